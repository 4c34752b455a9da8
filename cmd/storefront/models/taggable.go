package models

// Target type discriminators for the tag association store. Every type
// listed here gets a resolver registered in the container; the store
// rejects anything else with a configuration error.
const (
	TargetTypeProduct  = "product"
	TargetTypeCustomer = "customer"
	TargetTypeOrder    = "order"
)
