package mock

import (
	"context"

	"github.com/pelinbingl/emlak"
)

var _ emlak.Assembler = (*Assembler)(nil)

// Assembler is a mock implementation of emlak.Assembler.
type Assembler struct {
	AssembleFn func(ctx context.Context, source, html string) (*emlak.Assembly, error)
}

func (a *Assembler) Assemble(ctx context.Context, source, html string) (*emlak.Assembly, error) {
	return a.AssembleFn(ctx, source, html)
}
