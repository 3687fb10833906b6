package ticker

// companyTickerMap is the closed universe of companies the advisor knows
// about, keyed by canonical company name.
var companyTickerMap = map[string]string{
	"Reliance Industries":                      "RELIANCE",
	"Tata Consultancy Services":                "TCS",
	"HDFC Bank":                                "HDFCBANK",
	"ICICI Bank":                               "ICICIBANK",
	"Infosys":                                  "INFY",
	"Hindustan Unilever":                       "HINDUNILVR",
	"Kotak Mahindra Bank":                      "KOTAKBANK",
	"State Bank of India":                      "SBIN",
	"Larsen & Toubro":                          "LT",
	"ITC":                                      "ITC",
	"Bajaj Finance":                            "BAJFINANCE",
	"Asian Paints":                             "ASIANPAINT",
	"Housing Development Finance Corporation":  "HDFC",
	"Maruti Suzuki":                            "MARUTI",
	"Axis Bank":                                "AXISBANK",
	"Sun Pharmaceutical":                       "SUNPHARMA",
	"Wipro":                                    "WIPRO",
	"Nestle India":                             "NESTLEIND",
	"Bharti Airtel":                            "BHARTIARTL",
	"UltraTech Cement":                         "ULTRACEMCO",
	"Titan Company":                            "TITAN",
	"Power Grid Corporation":                   "POWERGRID",
	"Oil and Natural Gas Corporation":          "ONGC",
	"Eicher Motors":                            "EICHERMOT",
	"Dr. Reddy's Laboratories":                 "DRREDDY",
	"Divi's Laboratories":                      "DIVISLAB",
	"Mahindra & Mahindra":                      "M&M",
	"Tech Mahindra":                            "TECHM",
	"Coal India":                               "COALINDIA",
	"JSW Steel":                                "JSWSTEEL",
}

// universe is the fixed, ordered ticker list the screener reconciles.
var universe = []string{
	"RELIANCE", "TCS", "HDFCBANK", "ICICIBANK", "INFY",
	"HINDUNILVR", "KOTAKBANK", "SBIN", "LT", "ITC",
	"BAJFINANCE", "ASIANPAINT", "HDFC", "MARUTI", "AXISBANK",
	"SUNPHARMA", "WIPRO", "NESTLEIND", "BHARTIARTL", "ULTRACEMCO",
	"TITAN", "POWERGRID", "ONGC", "EICHERMOT", "DRREDDY",
	"DIVISLAB", "M&M", "TECHM", "COALINDIA", "JSWSTEEL",
}

// Universe returns the screener's ticker list in its fixed processing order.
func Universe() []string {
	out := make([]string, len(universe))
	copy(out, universe)
	return out
}

// CompanyNames returns every known company name.
func CompanyNames() []string {
	names := make([]string, 0, len(companyTickerMap))
	for name := range companyTickerMap {
		names = append(names, name)
	}
	return names
}

// TickerByCompany looks up a ticker by exact company name.
func TickerByCompany(name string) (string, bool) {
	t, ok := companyTickerMap[name]
	return t, ok
}

// IsValidTicker reports whether symbol belongs to the universe.
func IsValidTicker(symbol string) bool {
	for _, t := range universe {
		if t == symbol {
			return true
		}
	}
	return false
}
