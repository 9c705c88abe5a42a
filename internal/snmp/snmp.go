package snmp

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"json2sql/internal/eapi"
	"json2sql/internal/oid"
	"json2sql/internal/portname"

	"github.com/gosnmp/gosnmp"
)

type walker interface {
	BulkWalk(rootOid string, walkFn gosnmp.WalkFunc) error
}

// Source reads interface error counters over SNMP v2c.
type Source struct {
	Target    string
	Port      uint16
	Community string
}

func (s *Source) connect() (*gosnmp.GoSNMP, error) {
	port := s.Port
	if port == 0 {
		port = 161
	}
	g := &gosnmp.GoSNMP{
		Target:    s.Target,
		Port:      port,
		Community: s.Community,
		Version:   gosnmp.Version2c,
		Timeout:   gosnmp.Default.Timeout,
		Retries:   1,
	}
	if err := g.Connect(); err != nil {
		return nil, fmt.Errorf("connect error: %v", err)
	}
	return g, nil
}

// ConnectedInterfacesCounters returns the counters of every interface that
// is operationally up, keyed by short interface name.
func (s *Source) ConnectedInterfacesCounters(ctx context.Context) (map[string]eapi.Counters, error) {
	g, err := s.connect()
	if err != nil {
		return nil, err
	}
	defer g.Conn.Close()
	g.Context = ctx

	return collect(g)
}

func collect(w walker) (map[string]eapi.Counters, error) {
	names := make(map[int]string)
	up := make(map[int]bool)
	fcs := make(map[int]int64)
	symbol := make(map[int]int64)

	walks := []struct {
		oid string
		fn  func(idx int, pdu gosnmp.SnmpPDU)
	}{
		{oid.IfName, func(idx int, pdu gosnmp.SnmpPDU) {
			if b, ok := pdu.Value.([]byte); ok {
				names[idx] = string(b)
			}
		}},
		{oid.IfOperStatus, func(idx int, pdu gosnmp.SnmpPDU) {
			up[idx] = int(gosnmp.ToBigInt(pdu.Value).Int64()) == oid.OperStatusUp
		}},
		{oid.FCSErrors, func(idx int, pdu gosnmp.SnmpPDU) {
			fcs[idx] = gosnmp.ToBigInt(pdu.Value).Int64()
		}},
		{oid.SymbolErrors, func(idx int, pdu gosnmp.SnmpPDU) {
			symbol[idx] = gosnmp.ToBigInt(pdu.Value).Int64()
		}},
	}

	for _, walk := range walks {
		prefix := walk.oid + "."
		err := w.BulkWalk(walk.oid, func(pdu gosnmp.SnmpPDU) error {
			idxStr := strings.TrimPrefix(strings.TrimPrefix(pdu.Name, "."), prefix)
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil // skip invalid
			}
			walk.fn(idx, pdu)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("SNMP walk %s error: %v", walk.oid, err)
		}
	}

	result := make(map[string]eapi.Counters)
	for idx, name := range names {
		if !up[idx] {
			continue
		}
		f, okF := fcs[idx]
		s, okS := symbol[idx]
		// interfaces without a dot3Stats row are not Ethernet
		if !okF && !okS {
			continue
		}
		result[portname.Short(name)] = eapi.Counters{FCS: f, Symbol: s}
	}
	return result, nil
}
