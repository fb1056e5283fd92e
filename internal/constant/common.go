package constant

const (
	ProductionEnvironment = "production"

	DefaultQuoteCurrency = "USDT"
)
