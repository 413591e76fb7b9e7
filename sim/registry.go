package sim

// Named returns the scenario registered under name, and false if no
// such scenario exists. Backs the CLI's `run <name>` and `info`
// subcommands.
func Named(name string) (Scenario, bool) {
	switch name {
	case "trust_emergence":
		return TrustEmergence{NodeCount: 20}, true
	case "adversary_strategic":
		return AdversaryStrategic{HonestCount: 20, AdversaryCount: 3, InjectAtTick: 100, DefectAtTick: 300}, true
	case "adversary_free_rider":
		return AdversaryFreeRider{HonestCount: 20, AdversaryCount: 3, InjectAtTick: 100}, true
	case "adversary_sybil":
		return AdversarySybil{HonestCount: 20, AdversaryCount: 5, InjectAtTick: 100}, true
	case "workflow_chain":
		return WorkflowChain{NodeCount: 9, StepCount: 6}, true
	case "workflow_fan_out_fan_in":
		return WorkflowFanOutFanIn{NodeCount: 9, Branches: 3}, true
	case "workflow_dag":
		return WorkflowDag{NodeCount: 9}, true
	default:
		return nil, false
	}
}

// Names lists every registered scenario, in the fixed order the `info`
// subcommand prints them.
func Names() []string {
	return []string{
		"trust_emergence",
		"adversary_strategic",
		"adversary_free_rider",
		"adversary_sybil",
		"workflow_chain",
		"workflow_fan_out_fan_in",
		"workflow_dag",
	}
}
