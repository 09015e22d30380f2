package domain

type QuoteSideEnum int

const (
	Buy QuoteSideEnum = iota
	Sell
)

func (e QuoteSideEnum) String() string {
	return []string{"Buy", "Sell"}[e]
}

type WatcherModeEnum int

const (
	Scheduled WatcherModeEnum = iota
	OnDemand
)

func (e WatcherModeEnum) String() string {
	return []string{"Scheduled", "OnDemand"}[e]
}
