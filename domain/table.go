package domain

// Table is a mongo collection name
type Table string

const (
	TableCounters          Table = "counters"
	TableReceipts          Table = "receipts"
	TableEventLogs         Table = "event_logs"
	TableBalances          Table = "balances"
	TableAllowances        Table = "allowances"
	TableDeployedAssets    Table = "deployed_assets"
	TableNftItems          Table = "nft_items"
	TableOperatorApprovals Table = "operator_approvals"
	TableListings          Table = "listings"
	TableStakingPools      Table = "staking_pools"
	TableStakeAccounts     Table = "stake_accounts"
	TableTrackerStates     Table = "tracker_states"
)
