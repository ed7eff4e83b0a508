package market

import "github.com/chucky-1/papertrade/internal/model"

// seedStocks is the static instrument universe. Price and Change are the
// listed reference values a ticker's first day basis is derived from.
var seedStocks = []model.Stock{
	{Ticker: "AAPL", Name: "Apple Inc.", Price: 178.42, Change: 3.26, PercentChange: 1.86, Volume: 45_302_100, MarketCap: 2_800_000_000_000},
	{Ticker: "MSFT", Name: "Microsoft Corporation", Price: 346.75, Change: 2.35, PercentChange: 0.68, Volume: 17_240_300, MarketCap: 2_580_000_000_000},
	{Ticker: "AMZN", Name: "Amazon.com Inc.", Price: 127.74, Change: -0.48, PercentChange: -0.37, Volume: 31_250_400, MarketCap: 1_323_000_000_000},
	{Ticker: "GOOGL", Name: "Alphabet Inc.", Price: 136.19, Change: 1.72, PercentChange: 1.28, Volume: 14_125_200, MarketCap: 1_720_000_000_000},
	{Ticker: "TSLA", Name: "Tesla Inc.", Price: 237.49, Change: -5.26, PercentChange: -2.17, Volume: 115_420_700, MarketCap: 753_000_000_000},
	{Ticker: "META", Name: "Meta Platforms Inc.", Price: 302.55, Change: 6.14, PercentChange: 2.07, Volume: 21_340_900, MarketCap: 778_000_000_000},
	{Ticker: "NFLX", Name: "Netflix Inc.", Price: 398.69, Change: 7.82, PercentChange: 2.00, Volume: 5_230_100, MarketCap: 176_000_000_000},
	{Ticker: "DIS", Name: "The Walt Disney Company", Price: 84.72, Change: -1.05, PercentChange: -1.23, Volume: 12_345_600, MarketCap: 155_000_000_000},
	{Ticker: "NVDA", Name: "NVIDIA Corporation", Price: 941.27, Change: 24.35, PercentChange: 2.66, Volume: 42_631_400, MarketCap: 2_320_000_000_000},
	{Ticker: "JPM", Name: "JPMorgan Chase & Co.", Price: 189.15, Change: -0.87, PercentChange: -0.46, Volume: 9_234_500, MarketCap: 545_000_000_000},
	{Ticker: "V", Name: "Visa Inc.", Price: 273.48, Change: 1.85, PercentChange: 0.68, Volume: 7_843_200, MarketCap: 567_000_000_000},
	{Ticker: "WMT", Name: "Walmart Inc.", Price: 67.81, Change: 0.97, PercentChange: 1.45, Volume: 8_732_400, MarketCap: 546_000_000_000},
	{Ticker: "PG", Name: "Procter & Gamble Co.", Price: 164.25, Change: 0.52, PercentChange: 0.32, Volume: 5_487_300, MarketCap: 387_000_000_000},
	{Ticker: "MA", Name: "Mastercard Incorporated", Price: 458.12, Change: 3.24, PercentChange: 0.71, Volume: 2_843_700, MarketCap: 429_000_000_000},
	{Ticker: "HD", Name: "The Home Depot, Inc.", Price: 345.78, Change: -2.32, PercentChange: -0.67, Volume: 3_954_200, MarketCap: 342_000_000_000},
	{Ticker: "PYPL", Name: "PayPal Holdings, Inc.", Price: 63.82, Change: -1.25, PercentChange: -1.92, Volume: 12_342_800, MarketCap: 68_000_000_000},
	{Ticker: "INTC", Name: "Intel Corporation", Price: 32.47, Change: 0.87, PercentChange: 2.75, Volume: 45_324_600, MarketCap: 137_000_000_000},
	{Ticker: "AMD", Name: "Advanced Micro Devices, Inc.", Price: 157.41, Change: 5.26, PercentChange: 3.46, Volume: 53_423_100, MarketCap: 254_000_000_000},
	{Ticker: "CRM", Name: "Salesforce, Inc.", Price: 253.87, Change: 1.35, PercentChange: 0.53, Volume: 6_784_200, MarketCap: 246_000_000_000},
	{Ticker: "ADBE", Name: "Adobe Inc.", Price: 489.95, Change: -3.47, PercentChange: -0.70, Volume: 3_485_600, MarketCap: 219_000_000_000},
	{Ticker: "CSCO", Name: "Cisco Systems, Inc.", Price: 48.52, Change: 0.34, PercentChange: 0.71, Volume: 18_534_200, MarketCap: 197_000_000_000},
	{Ticker: "KO", Name: "The Coca-Cola Company", Price: 62.34, Change: -0.18, PercentChange: -0.29, Volume: 12_543_700, MarketCap: 269_000_000_000},
	{Ticker: "PEP", Name: "PepsiCo, Inc.", Price: 172.31, Change: 0.86, PercentChange: 0.50, Volume: 5_634_800, MarketCap: 237_000_000_000},
	{Ticker: "NKE", Name: "NIKE, Inc.", Price: 93.76, Change: -1.24, PercentChange: -1.31, Volume: 9_876_500, MarketCap: 142_000_000_000},
	{Ticker: "MCD", Name: "McDonald's Corporation", Price: 257.82, Change: 2.15, PercentChange: 0.84, Volume: 3_426_700, MarketCap: 186_000_000_000},
	{Ticker: "SBUX", Name: "Starbucks Corporation", Price: 75.93, Change: -1.46, PercentChange: -1.89, Volume: 10_432_600, MarketCap: 86_000_000_000},
	{Ticker: "TXN", Name: "Texas Instruments Incorporated", Price: 169.43, Change: 3.28, PercentChange: 1.97, Volume: 5_324_700, MarketCap: 154_000_000_000},
	{Ticker: "BAC", Name: "Bank of America Corporation", Price: 37.95, Change: -0.58, PercentChange: -1.51, Volume: 42_654_300, MarketCap: 298_000_000_000},
}

var stockDescriptions = map[string]string{
	"AAPL":  "Apple Inc. designs, manufactures, and markets smartphones, personal computers, tablets, wearables, and accessories worldwide.",
	"MSFT":  "Microsoft Corporation develops, licenses, and supports software, services, devices, and solutions worldwide.",
	"AMZN":  "Amazon.com, Inc. engages in the retail sale of consumer products and subscriptions in North America and internationally.",
	"GOOGL": "Alphabet Inc. provides various products and platforms in the United States, Europe, the Middle East, Africa, and Asia Pacific.",
	"TSLA":  "Tesla, Inc. designs, develops, manufactures, leases, and sells electric vehicles, and energy generation and storage systems.",
	"META":  "Meta Platforms, Inc. engages in the development of products that enable people to connect through mobile devices, PCs, and other devices.",
	"NFLX":  "Netflix, Inc. provides entertainment services, offering TV series, documentaries, feature films, and mobile games across various genres and languages.",
	"DIS":   "The Walt Disney Company, together with its subsidiaries, operates as an entertainment company worldwide.",
}
