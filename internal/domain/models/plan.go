package models

import (
	"fmt"

	"github.com/trebuchet-org/stake-deployer/internal/domain"
)

// ArgumentKind tells the orchestrator how to obtain a constructor value
type ArgumentKind string

const (
	// ArgumentLiteral values are passed to the constructor unchanged
	ArgumentLiteral ArgumentKind = "literal"
	// ArgumentContractRef is replaced by the address of an earlier contract in the plan
	ArgumentContractRef ArgumentKind = "contract"
	// ArgumentDeployerRef is replaced by the deployer's own address
	ArgumentDeployerRef ArgumentKind = "deployer"
)

// DeployerRef is the reserved reference name for the deployer address
const DeployerRef = "deployer"

// Argument is a single constructor argument of a contract spec
type Argument struct {
	Kind  ArgumentKind `json:"kind" yaml:"kind"`
	Value any          `json:"value,omitempty" yaml:"value,omitempty"`
	Ref   string       `json:"ref,omitempty" yaml:"ref,omitempty"`
}

// Literal creates a literal argument
func Literal(v any) Argument {
	return Argument{Kind: ArgumentLiteral, Value: v}
}

// ContractRef creates a placeholder for the address of the named contract
func ContractRef(name string) Argument {
	return Argument{Kind: ArgumentContractRef, Ref: name}
}

// Deployer creates a placeholder for the deployer address
func Deployer() Argument {
	return Argument{Kind: ArgumentDeployerRef, Ref: DeployerRef}
}

// IsPlaceholder reports whether the argument is resolved at deployment time
func (a Argument) IsPlaceholder() bool {
	return a.Kind == ArgumentContractRef || a.Kind == ArgumentDeployerRef
}

func (a Argument) String() string {
	switch a.Kind {
	case ArgumentContractRef:
		return fmt.Sprintf("<%s.address>", a.Ref)
	case ArgumentDeployerRef:
		return "<deployer>"
	default:
		return FormatArgument(a.Value)
	}
}

// ContractSpec describes one contract to deploy
type ContractSpec struct {
	// Name identifies the contract inside the plan, e.g. "Core"
	Name string `json:"name" yaml:"name"`
	// Artifact is the compiled contract name, e.g. "StakeCore"
	Artifact string     `json:"artifact" yaml:"artifact"`
	Args     []Argument `json:"args" yaml:"args"`
}

// ArtifactName returns the compiled contract name, falling back to Name
func (s ContractSpec) ArtifactName() string {
	if s.Artifact != "" {
		return s.Artifact
	}
	return s.Name
}

// Plan is an ordered list of contracts to deploy
type Plan struct {
	Name      string         `json:"name" yaml:"name"`
	Contracts []ContractSpec `json:"contracts" yaml:"contracts"`
}

// Validate checks the plan structure. Reference ordering is checked by the
// orchestrator, which reports it as an argument resolution error.
func (p *Plan) Validate() error {
	var problems []string

	if p.Name == "" {
		problems = append(problems, "plan name is required")
	}
	if len(p.Contracts) == 0 {
		problems = append(problems, "at least one contract is required")
	}

	seen := make(map[string]bool, len(p.Contracts))
	for i, spec := range p.Contracts {
		if spec.Name == "" {
			problems = append(problems, fmt.Sprintf("contract #%d has no name", i))
			continue
		}
		if spec.Name == DeployerRef {
			problems = append(problems, fmt.Sprintf("contract #%d uses reserved name %q", i, DeployerRef))
		}
		if seen[spec.Name] {
			problems = append(problems, fmt.Sprintf("duplicate contract name %q", spec.Name))
		}
		seen[spec.Name] = true

		for j, arg := range spec.Args {
			switch arg.Kind {
			case ArgumentLiteral, ArgumentDeployerRef:
			case ArgumentContractRef:
				if arg.Ref == "" {
					problems = append(problems, fmt.Sprintf("%s: argument %d references an empty contract name", spec.Name, j))
				}
			default:
				problems = append(problems, fmt.Sprintf("%s: argument %d has unknown kind %q", spec.Name, j, arg.Kind))
			}
		}
	}

	if len(problems) > 0 {
		return domain.PlanValidationErr{Problems: problems}
	}
	return nil
}
