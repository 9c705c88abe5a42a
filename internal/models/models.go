package models

import "time"

// ErrorSample is one polled reading of an interface's error counters.
type ErrorSample struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Interface string    `gorm:"index:idx_sample_iface_time,priority:1;not null" json:"interface"`
	FCS       int64     `gorm:"column:fcs" json:"fcs"`
	Symbol    int64     `json:"symbol"`
	PolledAt  time.Time `gorm:"index:idx_sample_iface_time,priority:2" json:"polled_at"`
}

// InterfaceState tracks consecutive error polls for one interface.
type InterfaceState struct {
	Interface         string    `gorm:"primaryKey" json:"interface"`
	LastFCS           int64     `gorm:"column:last_fcs" json:"last_fcs"`
	LastSymbol        int64     `json:"last_symbol"`
	ConsecutiveErrors int       `json:"consecutive_errors"`
	Disabled          bool      `json:"disabled"`
	Absent            bool      `json:"absent"` // missing from the last poll
	UpdatedAt         time.Time `json:"updated_at"`
}
