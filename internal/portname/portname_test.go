package portname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShort(t *testing.T) {
	cases := map[string]string{
		"Ethernet1":      "Et1",
		"Ethernet49/1":   "Et49/1",
		"Ethernet3/12/4": "Et3/12/4",
		"Management1":    "Ma1",
		"Port-Channel10": "Po10",
		"Vlan100":        "Vl100",
		"Loopback0":      "Lo0",
		"Et1":            "Et1",
		"Tunnel5":        "Tunnel5",
		"":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Short(in), in)
	}
}
