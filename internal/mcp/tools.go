package mcp

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// Schema builders for the tool inputs. Keeping these as typed
// jsonschema.Schema values (rather than free-form maps) means an invalid
// schema fails at construction, not at call time.

func obj(props map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object", Properties: props, Required: required}
}

func str(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: desc}
}

func strEnum(desc string, values ...any) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: desc, Enum: values}
}

func integer(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "integer", Description: desc}
}

func number(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "number", Description: desc}
}

func boolean(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "boolean", Description: desc}
}

func arr(desc string, items *jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "array", Description: desc, Items: items}
}

func emptySchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object"}
}

func prioritySchema(desc string) *jsonschema.Schema {
	return strEnum(desc, "low", "medium", "high", "critical")
}

func complexitySchema(desc string) *jsonschema.Schema {
	return strEnum(desc, "trivial", "standard", "complex")
}

func profileSchema() *jsonschema.Schema {
	return obj(map[string]*jsonschema.Schema{
		"name":                      str("Optional profile name"),
		"propagation_rate":          number("Reserved carry-forward fraction in [0,1]; unresolved items are always fully carried"),
		"decay_rate":                number("Expected fraction of pending items that self-resolve daily, in [0,1]"),
		"aging_enabled":             boolean("Whether priorities escalate with age"),
		"aging_threshold_days":      integer("Days of waiting per one-level priority escalation, > 0"),
		"overflow_strategy":         strEnum("Policy for excess items", "reject", "defer", "escalate", "outsource"),
		"sla_breach_threshold_days": integer("Default due window in days, > 0"),
		"sla_threshold_overrides": {
			Type:                 "object",
			Description:          "Optional per-priority due windows overriding the default threshold",
			AdditionalProperties: integer("Due window in days, > 0"),
		},
		"sla_penalty_per_day":          number("Penalty cost per breached pending item per day, >= 0"),
		"customer_satisfaction_impact": number("One-off satisfaction impact per breached item, <= 0"),
		"recovery_rate_multiplier":     number("Capacity multiplier inside a recovery window, >= 1"),
		"recovery_priority_boost":      integer("Priority levels added by the escalate strategy, >= 0"),
		"max_backlog_capacity":         integer("Optional pending-count cap that triggers overflow handling"),
	},
		"decay_rate", "aging_threshold_days", "overflow_strategy", "sla_breach_threshold_days")
}

func capacitySchema() *jsonschema.Schema {
	return obj(map[string]*jsonschema.Schema{
		"day":                   integer("Day index"),
		"capacity_hours":        number("Resolution hours available"),
		"staff_count":           integer("Staff on shift"),
		"max_items":             integer("Optional hard cap on items, independent of hours"),
		"productivity_modifier": number("Opaque multiplier from the variance estimator, defaults to 1.0"),
	}, "day", "capacity_hours")
}

func demandSchema() *jsonschema.Schema {
	return obj(map[string]*jsonschema.Schema{
		"day": integer("Day index"),
		"arrivals": arr("New item batches for the day", obj(map[string]*jsonschema.Schema{
			"priority":   prioritySchema("Priority of the batch"),
			"complexity": complexitySchema("Complexity of the batch"),
			"count":      integer("Number of items"),
		}, "priority", "complexity", "count")),
	}, "day")
}

func initialItemSchema() *jsonschema.Schema {
	return obj(map[string]*jsonschema.Schema{
		"id":         str("Optional stable ID; generated when empty"),
		"priority":   prioritySchema("Current priority"),
		"complexity": complexitySchema("Sizing band"),
		"age_days":   integer("Days already waited before the simulation starts"),
	}, "priority", "complexity")
}

func planProperties() map[string]*jsonschema.Schema {
	return map[string]*jsonschema.Schema{
		"profile_template": str("Name of a preset profile; mutually exclusive with 'profile'"),
		"profile":          profileSchema(),
		"initial_backlog":  arr("Items already pending at the start", initialItemSchema()),
		"capacities":       arr("Per-day capacity plan covering every day in the range", capacitySchema()),
		"demands":          arr("Per-day demand plan covering every day in the range (use an empty arrivals list for quiet days)", demandSchema()),
		"start_day":        integer("First simulated day index, inclusive"),
		"end_day":          integer("Last simulated day index, inclusive"),
		"seed":             integer("RNG seed; identical inputs and seed reproduce the run byte for byte"),
		"recovery_from":    integer("Optional first day of a recovery window (capacity boosted by the profile multiplier)"),
		"recovery_until":   integer("Optional last day of the recovery window"),
	}
}

func propagateSchema() *jsonschema.Schema {
	props := planProperties()
	props["persist"] = boolean("Store the full result as JSON under the data path and report the run ID")
	return obj(props, "capacities", "demands", "start_day", "end_day")
}

func quickScenariosSchema() *jsonschema.Schema {
	return obj(map[string]*jsonschema.Schema{
		"daily_capacity_hours": number("Daily resolution hours, defaults to 40"),
		"staff_count":          integer("Staff on shift, defaults to 5"),
		"daily_arrivals": arr("Fixed daily arrival mix, defaults to a mid-size team mix", obj(map[string]*jsonschema.Schema{
			"priority":   prioritySchema("Priority of the batch"),
			"complexity": complexitySchema("Complexity of the batch"),
			"count":      integer("Number of items"),
		}, "priority", "complexity", "count")),
		"initial_pending": integer("Pending items at day zero, defaults to 20"),
		"horizon_days":    integer("Days to simulate, defaults to 30"),
		"seed":            integer("Base RNG seed; each preset derives its own"),
	})
}

func loadRunSchema() *jsonschema.Schema {
	return obj(map[string]*jsonschema.Schema{
		"run_id": str("Run ID as reported by a persisted propagate call or list_runs"),
	}, "run_id")
}

func varianceSweepSchema() *jsonschema.Schema {
	props := planProperties()
	props["runs"] = integer("Number of Monte Carlo trials, defaults to the configured sweep size")
	props["volatility"] = number("Std dev of the productivity noise factor, e.g. 0.2")
	return obj(props, "capacities", "demands", "start_day", "end_day", "volatility")
}
