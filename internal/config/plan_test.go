package config

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/stake-deployer/internal/domain/models"
)

const stakePlanYAML = `
name: stake
vars:
  token: "0x46bEE5F8aF3dcff4D6C97993b815785E27cAE80c"
contracts:
  - name: Core
    artifact: StakeCore
    args: [{var: token}, 180, 60, 1]
  - name: BeneficiaryCore
    args: [{var: token}, {ref: deployer}, {ref: Core}]
`

func TestParsePlan(t *testing.T) {
	plan, err := ParsePlan([]byte(stakePlanYAML))
	require.NoError(t, err)

	assert.Equal(t, "stake", plan.Name)
	require.Len(t, plan.Contracts, 2)

	core := plan.Contracts[0]
	assert.Equal(t, "Core", core.Name)
	assert.Equal(t, "StakeCore", core.ArtifactName())
	assert.Equal(t, []models.Argument{
		models.Literal("0x46bEE5F8aF3dcff4D6C97993b815785E27cAE80c"),
		models.Literal(180),
		models.Literal(60),
		models.Literal(1),
	}, core.Args)

	beneficiary := plan.Contracts[1]
	assert.Equal(t, "BeneficiaryCore", beneficiary.ArtifactName())
	assert.Equal(t, []models.Argument{
		models.Literal("0x46bEE5F8aF3dcff4D6C97993b815785E27cAE80c"),
		models.Deployer(),
		models.ContractRef("Core"),
	}, beneficiary.Args)
}

func TestParsePlanLiterals(t *testing.T) {
	plan, err := ParsePlan([]byte(`
name: literals
contracts:
  - name: Big
    args: [115792089237316195423570985008687907853269984665640564039457584007913129639935, 0xff, true, [1, 2], "text"]
`))
	require.NoError(t, err)

	args := plan.Contracts[0].Args
	require.Len(t, args, 5)

	maxUint, _ := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)
	assert.Equal(t, 0, maxUint.Cmp(args[0].Value.(*big.Int)))
	assert.Equal(t, 255, args[1].Value)
	assert.Equal(t, true, args[2].Value)
	assert.Equal(t, []any{1, 2}, args[3].Value)
	assert.Equal(t, "text", args[4].Value)
}

func TestParsePlanErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "undefined var",
			yaml:    "name: p\ncontracts:\n  - name: A\n    args: [{var: missing}]\n",
			wantErr: `undefined var "missing"`,
		},
		{
			name:    "ref and var",
			yaml:    "name: p\nvars: {x: 1}\ncontracts:\n  - name: A\n    args: [{ref: B, var: x}]\n",
			wantErr: "both ref and var",
		},
		{
			name:    "empty mapping",
			yaml:    "name: p\ncontracts:\n  - name: A\n    args: [{other: 1}]\n",
			wantErr: "needs a ref or var",
		},
		{
			name:    "invalid yaml",
			yaml:    "name: [",
			wantErr: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePlan([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadPlan(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deploy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(stakePlanYAML), 0644))

	plan, err := LoadPlan(path)
	require.NoError(t, err)
	assert.Equal(t, "stake", plan.Name)

	_, err = LoadPlan(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read plan")
}
