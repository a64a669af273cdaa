package usecase

import (
	"context"
	"fmt"
	"path/filepath"
)

// InitProject scaffolds a deployer project
type InitProject struct {
	fileWriter FileWriter
	progress   ProgressSink
}

// NewInitProject creates a new init project use case
func NewInitProject(fileWriter FileWriter, progress ProgressSink) *InitProject {
	return &InitProject{
		fileWriter: fileWriter,
		progress:   progress,
	}
}

// InitProjectParams contains parameters for project initialization
type InitProjectParams struct {
	Dir string
}

// InitProjectResult contains the result of project initialization
type InitProjectResult struct {
	AlreadyInitialized bool
	Steps              []InitStep
}

// InitStep represents a step in the initialization process
type InitStep struct {
	Name    string
	Success bool
	Message string
	Error   error
}

type scaffoldFile struct {
	step    string
	path    string
	content string
}

var scaffoldFiles = []scaffoldFile{
	{step: "Create deployer.toml", path: "deployer.toml", content: deployerTomlTemplate},
	{step: "Create deployment plan", path: "deploy.yaml", content: deployPlanTemplate},
	{step: "Create Environment Example", path: ".env.example", content: envExampleTemplate},
}

// Execute writes the project files that do not exist yet. Existing files are never overwritten.
func (i *InitProject) Execute(ctx context.Context, params InitProjectParams) (*InitProjectResult, error) {
	result := &InitProjectResult{Steps: []InitStep{}}

	dir := params.Dir
	if dir == "" {
		dir = "."
	}

	if err := i.fileWriter.EnsureDirectory(ctx, filepath.Join(dir, ".deployer")); err != nil {
		return result, fmt.Errorf("failed to create .deployer directory: %w", err)
	}

	existing := 0
	for _, file := range scaffoldFiles {
		step := i.writeIfMissing(ctx, dir, file)
		result.Steps = append(result.Steps, step)
		if step.Error != nil {
			return result, step.Error
		}
		if step.Message == file.path+" already exists" {
			existing++
		}
	}
	result.AlreadyInitialized = existing == len(scaffoldFiles)

	return result, nil
}

func (i *InitProject) writeIfMissing(ctx context.Context, dir string, file scaffoldFile) InitStep {
	path := filepath.Join(dir, file.path)

	exists, err := i.fileWriter.FileExists(ctx, path)
	if err != nil {
		return InitStep{
			Name:    file.step,
			Success: false,
			Error:   fmt.Errorf("failed to check %s: %w", file.path, err),
		}
	}
	if exists {
		return InitStep{
			Name:    file.step,
			Success: true,
			Message: file.path + " already exists",
		}
	}

	if err := i.fileWriter.WriteFile(ctx, path, []byte(file.content)); err != nil {
		return InitStep{
			Name:    file.step,
			Success: false,
			Error:   fmt.Errorf("failed to create %s: %w", file.path, err),
		}
	}

	i.progress.Info(fmt.Sprintf("created %s", file.path))
	return InitStep{
		Name:    file.step,
		Success: true,
		Message: "Created " + file.path,
	}
}

const deployerTomlTemplate = `# deployer.toml

# --- Networks ---
# Each [networks.<name>] declares a chain. Deployments refuse to run on a
# network without chain_id. Values may reference env vars as ${VAR}.

[networks.ethereum]
chain_id = 1
rpc_url = "${ETHEREUM_RPC_URL}"

[networks.goerli]
chain_id = 5
rpc_url = "${GOERLI_RPC_URL}"

[networks.sepolia]
chain_id = 11155111
rpc_url = "https://1rpc.io/sepolia"

# Local node, no chain_id declared
[networks.hardhat]
rpc_url = "http://127.0.0.1:8545"

# --- Deployer ---
[deployer]
private_key = "${PRIVATE_KEY}"

# --- Artifacts ---
[artifacts]
dir = "build/artifacts"

# --- Confirmation ---
[confirmation]
timeout = "5m"
`

const deployPlanTemplate = `# deploy.yaml
name: stake

vars:
  token: "0x46bEE5F8aF3dcff4D6C97993b815785E27cAE80c"

contracts:
  - name: Core
    artifact: StakeCore
    # token, installmentPeriod, installmentCount, stakerShare
    args: [{var: token}, 180, 60, 1]

  - name: BeneficiaryCore
    artifact: BeneficiaryCore
    # token, owner, core
    args: [{var: token}, {ref: deployer}, {ref: Core}]
`

const envExampleTemplate = `# deployer configuration

# Private key of the deploying account
PRIVATE_KEY=

# RPC URLs
ETHEREUM_RPC_URL=
GOERLI_RPC_URL=
`
