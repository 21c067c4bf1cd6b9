package report

// tabDescription documents one workbook sheet for the README sheet.
type tabDescription struct {
	Tab  string
	What string
}

// tabGlossary lists every data sheet and what it shows.
var tabGlossary = []tabDescription{
	{"PerUserSummary", "Aggregated per-user stats (balances, overdrafts, mismatches etc.)"},
	{"RedFlags", "All rows with any flagged issue (overdraft, mismatch, flow break, anomaly)"},
	{"OverdraftEvents", "Only rows where newBalance < 0"},
	{"MismatchEvents", "Only rows where delta != expected amount"},
	{"FlowBreaks", "Only rows where balances didn't carry over correctly"},
	{"Anomalies", "Only rows where delta is an unusual outlier (>3 sigma)"},
	{"SampleRaw", "First parsed rows from raw logs"},
	{"ColumnDefinitions", "Glossary of all column definitions"},
}

// columnDefinition documents one event-table column for the glossary sheet.
type columnDefinition struct {
	Column     string
	Definition string
}

// columnGlossary defines every column of the enriched event table, in
// EventColumns order.
var columnGlossary = []columnDefinition{
	{"requestId", "Unique identifier of the log invocation block"},
	{"file", "Source .gz log file"},
	{"start_ts", "Raw timestamp string from the log"},
	{"ts", "Parsed datetime version of start_ts"},
	{"paymentBalance", "Balance at time of payment (from log)"},
	{"oldBalance", "Balance before the transaction"},
	{"newBalance", "Balance after the transaction"},
	{"amount", "Transaction amount"},
	{"action", "Action recorded in log"},
	{"transactionAction", "Subtype of transaction action"},
	{"walletId", "Wallet identifier for subscriber"},
	{"userId", "Subscriber/user identifier"},
	{"email", "Email of the subscriber (if logged)"},
	{"id", "Business transaction ID (if logged)"},
	{"delta", "newBalance - oldBalance"},
	{"amount_sign", "+1 if amount acts like credit, -1 if debit"},
	{"expected_delta", "Expected delta = amount * amount_sign"},
	{"mismatch", "True if delta != expected_delta (inconsistency)"},
	{"overdraft_before", "True if oldBalance < 0"},
	{"overdraft_after", "True if newBalance < 0"},
	{"overdraft_cross", "True if crossed from >=0 to <0"},
	{"next_old", "Next event's oldBalance (for flow check)"},
	{"flow_break", "True if newBalance != next oldBalance"},
	{"delta_anomaly", "True if delta is an outlier (>3 sigma for that user)"},
}
