package oid

import (
	"encoding/json"
	"os"
)

// Default OIDs. FCS and symbol errors come from EtherLike-MIB
// dot3StatsTable, names and oper status from IF-MIB.
var (
	IfName       = "1.3.6.1.2.1.31.1.1.1.1"
	IfOperStatus = "1.3.6.1.2.1.2.2.1.8"
	FCSErrors    = "1.3.6.1.2.1.10.7.2.1.3"
	SymbolErrors = "1.3.6.1.2.1.10.7.2.1.18"
	OperStatusUp = 1
)

// Load overrides the defaults from a JSON file. Missing keys keep their
// default value.
func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var cfg struct {
		IfName       string `json:"if_name"`
		IfOperStatus string `json:"if_oper_status"`
		FCSErrors    string `json:"fcs_errors"`
		SymbolErrors string `json:"symbol_errors"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return err
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&IfName, cfg.IfName)
	set(&IfOperStatus, cfg.IfOperStatus)
	set(&FCSErrors, cfg.FCSErrors)
	set(&SymbolErrors, cfg.SymbolErrors)
	return nil
}
