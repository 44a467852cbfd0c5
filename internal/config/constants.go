package config

// Event stream defaults
const (
	DefaultNewUserTopic     = "prod.auth.fact.new-user.1"
	DefaultNewUserGroup     = "inventory"
	DefaultItemUpdatesTopic = "shop.inventory.updates"
)

// Cache defaults
const (
	DefaultCacheTTLSeconds = 60
)
