package common

const (
	ComponentSyncer    = "syncer"
	ComponentProjector = "projector"
	ComponentAPI       = "api"
	ComponentMetrics   = "metrics"
	ComponentRPC       = "rpc"
)

var AllComponents = map[string]struct{}{
	ComponentSyncer:    {},
	ComponentProjector: {},
	ComponentAPI:       {},
	ComponentMetrics:   {},
	ComponentRPC:       {},
}
