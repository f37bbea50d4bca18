package ingest

import (
	"fmt"

	"github.com/chicpic/backend/internal/infrastructure/refdata"
	"go.uber.org/zap"
)

// Pipeline bundles the parser and converter strategies of one source
type Pipeline struct {
	Source    Source
	Parser    Parser
	Converter Converter
}

// Registry holds the pipeline of every supported source, keyed by shop name
type Registry struct {
	pipelines map[string]*Pipeline
	order     []string
}

// NewRegistry builds the pipelines of all supported sources
func NewRegistry(ref *refdata.Store, log *zap.Logger) (*Registry, error) {
	kitAndAce, err := NewKitAndAceParser(ref, log)
	if err != nil {
		return nil, err
	}
	frankAndOak, err := NewFrankAndOakParser(ref, log)
	if err != nil {
		return nil, err
	}
	tristan, err := NewTristanParser(ref, log)
	if err != nil {
		return nil, err
	}
	reebok, err := NewReebokParser(ref, log)
	if err != nil {
		return nil, err
	}
	vessi, err := NewVessiParser(ref, log)
	if err != nil {
		return nil, err
	}
	keen, err := NewKeenParser(ref, log)
	if err != nil {
		return nil, err
	}

	pipelines := []*Pipeline{
		{Source: SourceKitAndAce, Parser: kitAndAce, Converter: NewKitAndAceConverter(ref, log)},
		{Source: SourceFrankAndOak, Parser: frankAndOak, Converter: NewFrankAndOakConverter(ref, log)},
		{Source: SourceTristan, Parser: tristan, Converter: newBaseConverter(SourceTristan, ref, log)},
		{Source: SourceReebok, Parser: reebok, Converter: NewReebokConverter(ref, log)},
		{Source: SourceVessi, Parser: vessi, Converter: newBaseConverter(SourceVessi, ref, log)},
		{Source: SourceKeen, Parser: keen, Converter: newBaseConverter(SourceKeen, ref, log)},
	}

	registry := &Registry{pipelines: make(map[string]*Pipeline, len(pipelines))}
	for _, p := range pipelines {
		registry.pipelines[p.Source.Name] = p
		registry.order = append(registry.order, p.Source.Name)
	}
	return registry, nil
}

// Pipeline returns the pipeline for a shop name
func (r *Registry) Pipeline(shopName string) (*Pipeline, error) {
	p, ok := r.pipelines[shopName]
	if !ok {
		return nil, fmt.Errorf("no pipeline registered for shop %q", shopName)
	}
	return p, nil
}

// ShopNames returns the supported shop names in registration order
func (r *Registry) ShopNames() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
