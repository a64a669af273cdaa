package config

import (
	"fmt"
	"math/big"
	"os"
	"regexp"
	"strconv"

	"github.com/trebuchet-org/stake-deployer/internal/domain/models"
	"gopkg.in/yaml.v3"
)

// planFile is the YAML layout of a deployment plan
type planFile struct {
	Name      string               `yaml:"name"`
	Vars      map[string]yaml.Node `yaml:"vars,omitempty"`
	Contracts []contractEntry      `yaml:"contracts"`
}

type contractEntry struct {
	Name     string      `yaml:"name"`
	Artifact string      `yaml:"artifact,omitempty"`
	Args     []yaml.Node `yaml:"args,omitempty"`
}

// argRef is the mapping form of an argument: {ref: Core}, {ref: deployer} or {var: token}
type argRef struct {
	Ref string `yaml:"ref"`
	Var string `yaml:"var"`
}

// LoadPlan reads and parses a YAML deployment plan
func LoadPlan(path string) (*models.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}

	plan, err := ParsePlan(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse plan %s: %w", path, err)
	}
	return plan, nil
}

// ParsePlan parses a YAML deployment plan
func ParsePlan(data []byte) (*models.Plan, error) {
	var raw planFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	vars := make(map[string]any, len(raw.Vars))
	for name, node := range raw.Vars {
		value, err := decodeLiteral(&node)
		if err != nil {
			return nil, fmt.Errorf("var %s: %w", name, err)
		}
		vars[name] = value
	}

	plan := &models.Plan{
		Name:      raw.Name,
		Contracts: make([]models.ContractSpec, 0, len(raw.Contracts)),
	}

	for _, entry := range raw.Contracts {
		spec := models.ContractSpec{
			Name:     entry.Name,
			Artifact: entry.Artifact,
			Args:     make([]models.Argument, 0, len(entry.Args)),
		}

		for i := range entry.Args {
			arg, err := decodeArgument(&entry.Args[i], vars)
			if err != nil {
				return nil, fmt.Errorf("contract %s, argument %d: %w", entry.Name, i, err)
			}
			spec.Args = append(spec.Args, arg)
		}

		plan.Contracts = append(plan.Contracts, spec)
	}

	return plan, nil
}

func decodeArgument(node *yaml.Node, vars map[string]any) (models.Argument, error) {
	if node.Kind != yaml.MappingNode {
		value, err := decodeLiteral(node)
		if err != nil {
			return models.Argument{}, err
		}
		return models.Literal(value), nil
	}

	var ref argRef
	if err := node.Decode(&ref); err != nil {
		return models.Argument{}, err
	}

	switch {
	case ref.Ref != "" && ref.Var != "":
		return models.Argument{}, fmt.Errorf("argument sets both ref and var")
	case ref.Ref == models.DeployerRef:
		return models.Deployer(), nil
	case ref.Ref != "":
		return models.ContractRef(ref.Ref), nil
	case ref.Var != "":
		value, ok := vars[ref.Var]
		if !ok {
			return models.Argument{}, fmt.Errorf("undefined var %q", ref.Var)
		}
		return models.Literal(value), nil
	default:
		return models.Argument{}, fmt.Errorf("mapping argument needs a ref or var key")
	}
}

// integerLiteral matches plain integers that YAML may resolve as floats once
// they overflow 64 bits
var integerLiteral = regexp.MustCompile(`^[-+]?(0x[0-9a-fA-F]+|[0-9]+)$`)

// decodeLiteral decodes a scalar or sequence node. Integers that do not fit
// into int64 are kept as *big.Int.
func decodeLiteral(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if (node.Tag == "!!int" || node.Tag == "!!float") && integerLiteral.MatchString(node.Value) {
			if _, err := strconv.ParseInt(node.Value, 0, 64); err != nil {
				n, ok := new(big.Int).SetString(node.Value, 0)
				if !ok {
					return nil, fmt.Errorf("invalid integer %q", node.Value)
				}
				return n, nil
			}
		}
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case yaml.SequenceNode:
		values := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := decodeLiteral(item)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return values, nil
	case yaml.AliasNode:
		return decodeLiteral(node.Alias)
	default:
		return nil, fmt.Errorf("unsupported literal at line %d", node.Line)
	}
}
