package transpile

import "strings"

// oracleFormatTokens maps Oracle datetime format elements to the
// MySQL-style specifiers used by Trino's DATE_PARSE and DATE_FORMAT.
// Longer elements come first so that HH24 wins over HH.
var oracleFormatTokens = []struct {
	oracle string
	trino  string
}{
	{"YYYY", "%Y"},
	{"HH24", "%H"},
	{"HH12", "%h"},
	{"MONTH", "%M"},
	{"FF9", "%f"}, {"FF6", "%f"}, {"FF3", "%f"}, {"FF", "%f"},
	{"DDD", "%j"},
	{"DAY", "%W"},
	{"MON", "%b"},
	{"YY", "%y"},
	{"RR", "%y"},
	{"MM", "%m"},
	{"DD", "%d"},
	{"DY", "%a"},
	{"HH", "%h"},
	{"MI", "%i"},
	{"SS", "%s"},
	{"AM", "%p"},
	{"PM", "%p"},
}

// ConvertDateFormat rewrites an Oracle datetime format model, such as
// 'YYYY-MM-DD HH24:MI:SS', into Trino's %-specifier form ('%Y-%m-%d %H:%i:%s').
// Double-quoted text is copied literally and unknown characters pass through.
func ConvertDateFormat(oracle string) string {
	var b strings.Builder
	upper := strings.ToUpper(oracle)

	for i := 0; i < len(oracle); {
		if oracle[i] == '"' {
			end := strings.IndexByte(oracle[i+1:], '"')
			if end < 0 {
				end = len(oracle) - i - 1
			}
			b.WriteString(strings.ReplaceAll(oracle[i+1:i+1+end], "%", "%%"))
			i += end + 2
			continue
		}

		matched := false
		for _, tok := range oracleFormatTokens {
			if strings.HasPrefix(upper[i:], tok.oracle) {
				b.WriteString(tok.trino)
				i += len(tok.oracle)
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		if oracle[i] == '%' {
			b.WriteString("%%")
		} else {
			b.WriteByte(oracle[i])
		}
		i++
	}
	return b.String()
}
