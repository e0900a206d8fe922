package cleaner

// aliasMap collapses known merchant spellings onto a canonical name.
// Lookup is exact and case-sensitive, applied after the rule catalog.
var aliasMap = map[string]string{
	"Motorcycle Spare Parts Max Import":   "Motorcycle Spare Parts Max Import LLC",
	"Motorcycle Spare Parts Max Import L": "Motorcycle Spare Parts Max Import LLC",
	"CHARCO UTILITIES":                    "Charlotte County Utilities",
	"CHARLOTTE UTILTY":                    "Charlotte County Utilities",
	"LEE COUNTY":                          "LEE COUNTY TAX COLLECTOR",
	"ATT* BILL":                           "AT&T",
	"ATT* BILL PAYMENT":                   "AT&T",
	"APPLE.COM/BILL":                      "APPLE.COM",
	"AMAZON MKTPL":                        "Amazon",
	"NST THE HOME D":                      "THE HOME DEPOT",
	"FPL DIRECT DEBIT":                    "FPL DIRECT",
}

func applyAliases(name string) string {
	if canonical, ok := aliasMap[name]; ok {
		return canonical
	}
	return name
}
