package portname

import "regexp"

type Rule struct {
	Regex   *regexp.Regexp
	Handler func(match []string) string
}

var Rules = []Rule{
	// "Ethernet49/1" → "Et49/1"
	{
		regexp.MustCompile(`^Ethernet(\d+(?:/\d+)*)$`),
		func(m []string) string { return "Et" + m[1] },
	},
	// "Management1" → "Ma1"
	{
		regexp.MustCompile(`^Management(\d+(?:/\d+)*)$`),
		func(m []string) string { return "Ma" + m[1] },
	},
	// "Port-Channel10" → "Po10"
	{
		regexp.MustCompile(`^Port-Channel(\d+(?:\.\d+)?)$`),
		func(m []string) string { return "Po" + m[1] },
	},
	// "Vlan100" → "Vl100"
	{
		regexp.MustCompile(`^Vlan(\d+)$`),
		func(m []string) string { return "Vl" + m[1] },
	},
	// "Loopback0" → "Lo0"
	{
		regexp.MustCompile(`^Loopback(\d+)$`),
		func(m []string) string { return "Lo" + m[1] },
	},
}

// Short maps a long interface name to the abbreviation used in CLI tables.
// Names that match no rule are returned unchanged.
func Short(name string) string {
	for _, rule := range Rules {
		if match := rule.Regex.FindStringSubmatch(name); len(match) > 1 {
			return rule.Handler(match)
		}
	}
	return name
}
