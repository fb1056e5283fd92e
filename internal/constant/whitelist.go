package constant

const (
	WhitelistStreamName           = "whitelist"
	WhitelistStreamSubjectAll     = "whitelist.*"
	WhitelistStreamSubjectUpdated = "whitelist.updated"

	SyncStateKeyLastReport = "pairsync:last_report"
)
