package pillars

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/consilium-ai/consilium/internal/models"
)

// AgentSpec describes one configured pillar agent. Parameters are decoded
// into the kind-specific params struct.
type AgentSpec struct {
	Name       string         `yaml:"name"`
	Kind       string         `yaml:"kind"`
	Parameters map[string]any `yaml:"parameters,omitempty"`
}

// AgentInfo is the status snapshot reported for one registered agent.
type AgentInfo struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Ready bool   `json:"ready"`
}

// Create builds an agent of the given kind. Parameters not understood by
// the kind are rejected so configuration typos surface early.
func Create(kind string, params map[string]any) (Agent, error) {
	switch kind {
	case models.PillarFinance:
		var p FinanceParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		return NewFinanceAgent(p), nil
	case models.PillarRisk:
		var p RiskParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		return NewRiskAgent(p), nil
	case models.PillarCompliance:
		var p ComplianceParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		return NewComplianceAgent(p), nil
	case models.PillarMarket:
		var p MarketParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		return NewMarketAgent(p), nil
	default:
		return nil, fmt.Errorf("unknown pillar agent kind %q", kind)
	}
}

func decodeParams(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("decoding agent parameters: %w", err)
	}
	return nil
}

// Registry holds the configured agent set in a fixed dispatch order. The
// order also fixes streaming event emission.
type Registry struct {
	agents []Agent
	kinds  map[string]string
}

// NewRegistry builds a registry from agent specs. An empty spec list yields
// the default four pillars.
func NewRegistry(specs []AgentSpec) (*Registry, error) {
	if len(specs) == 0 {
		specs = DefaultSpecs()
	}

	r := &Registry{kinds: make(map[string]string, len(specs))}
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		kind := spec.Kind
		if kind == "" {
			kind = spec.Name
		}
		agent, err := Create(kind, spec.Parameters)
		if err != nil {
			return nil, fmt.Errorf("agent %q: %w", spec.Name, err)
		}
		name := agent.Name()
		if spec.Name != "" {
			name = spec.Name
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate pillar agent %q", name)
		}
		seen[name] = true
		r.agents = append(r.agents, named{Agent: agent, name: name})
		r.kinds[name] = kind
	}
	return r, nil
}

// Register appends an agent under its own name, after the configured set.
// It exists for installing custom or scripted agents alongside the
// built-ins; the zero Registry is usable.
func (r *Registry) Register(agent Agent, kind string) error {
	name := agent.Name()
	if _, ok := r.Lookup(name); ok {
		return fmt.Errorf("duplicate pillar agent %q", name)
	}
	if r.kinds == nil {
		r.kinds = make(map[string]string)
	}
	r.agents = append(r.agents, agent)
	r.kinds[name] = kind
	return nil
}

// DefaultSpecs returns the built-in four-pillar configuration.
func DefaultSpecs() []AgentSpec {
	specs := make([]AgentSpec, 0, 4)
	for _, p := range models.Pillars() {
		specs = append(specs, AgentSpec{Name: p, Kind: p})
	}
	return specs
}

// named overrides an agent's pillar identifier with its configured name.
type named struct {
	Agent
	name string
}

func (n named) Name() string { return n.name }

// Agents returns the registered agents in dispatch order.
func (r *Registry) Agents() []Agent {
	out := make([]Agent, len(r.agents))
	copy(out, r.agents)
	return out
}

// Names returns the registered pillar identifiers in dispatch order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.agents))
	for i, a := range r.agents {
		names[i] = a.Name()
	}
	return names
}

// Lookup returns the agent registered under name.
func (r *Registry) Lookup(name string) (Agent, bool) {
	for _, a := range r.agents {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// Status reports a snapshot of every registered agent.
func (r *Registry) Status() []AgentInfo {
	infos := make([]AgentInfo, 0, len(r.agents))
	for _, a := range r.agents {
		infos = append(infos, AgentInfo{
			Name:  a.Name(),
			Kind:  r.kinds[a.Name()],
			Ready: true,
		})
	}
	return infos
}
