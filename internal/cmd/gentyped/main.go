// Command gentyped generates the typed command buffer fronts of package ecb for every arity from 1
// to ecb.MaxPayloadSlots.
package main

import (
	"bytes"
	"flag"
	"go/format"
	"os"
	"strings"
	"text/template"

	"github.com/rs/zerolog/log"
)

const maxArity = 5

type arity struct {
	N      int
	Params string // "T1, T2"
	Args   string // "v1 T1, v2 T2"
	Values string // "v1, v2"
	Slots  string // "s1 Slot[T1], s2 Slot[T2]"
	Specs  string // "s1.spec, s2.spec"
	Data   string // "Data[T1]().spec, Data[T2]().spec"
	Idx    []int  // 0-based slot indices
}

func newArity(n int) arity {
	a := arity{N: n}
	var params, args, values, slots, specs, data []string
	for i := 1; i <= n; i++ {
		t := "T" + itoa(i)
		v := "v" + itoa(i)
		s := "s" + itoa(i)
		params = append(params, t)
		args = append(args, v+" "+t)
		values = append(values, v)
		slots = append(slots, s+" Slot["+t+"]")
		specs = append(specs, s+".spec")
		data = append(data, "Data["+t+"]().spec")
		a.Idx = append(a.Idx, i-1)
	}
	a.Params = strings.Join(params, ", ")
	a.Args = strings.Join(args, ", ")
	a.Values = strings.Join(values, ", ")
	a.Slots = strings.Join(slots, ", ")
	a.Specs = strings.Join(specs, ", ")
	a.Data = strings.Join(data, ", ")
	return a
}

func itoa(i int) string {
	return string(rune('0' + i))
}

func inc(i int) int {
	return i + 1
}

func main() {
	out := flag.String("out", "typed_generated.go", "output file")
	flag.Parse()

	tmpl := template.Must(template.New("typed").Funcs(template.FuncMap{"inc": inc}).Parse(typedTemplate))

	arities := make([]arity, 0, maxArity)
	for n := 1; n <= maxArity; n++ {
		arities = append(arities, newArity(n))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, arities); err != nil {
		log.Fatal().Err(err).Msg("failed to execute template")
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to format generated code")
	}
	if err := os.WriteFile(*out, src, 0o600); err != nil {
		log.Fatal().Err(err).Str("file", *out).Msg("failed to write generated code")
	}
}

const typedTemplate = `// Code generated by gentyped. DO NOT EDIT.

package ecb

import (
	"math"

	"github.com/argus-labs/ecb/pkg/ecs"
)
{{range .}}
// -------------------------------------------------------------------------------------------------
// Arity {{.N}}
// -------------------------------------------------------------------------------------------------

// ApplyBuffer{{.N}} records commands that write {{.Params}} into existing entities.
type ApplyBuffer{{.N}}[{{.Params}} any] struct {
	*buffer
}

// NewApplyBuffer{{.N}} creates an apply buffer whose records carry {{.Params}}. The types are
// registered in reg if they aren't already.
func NewApplyBuffer{{.N}}[{{.Params}} any](reg *ecs.Registry, opts ...Option) (*ApplyBuffer{{.N}}[{{.Params}}], error) {
	b, err := newBuffer(variantApply, reg, []slotSpec{ {{- .Data -}} }, opts)
	if err != nil {
		return nil, err
	}
	return &ApplyBuffer{{.N}}[{{.Params}}]{buffer: b}, nil
}

// Add records a command with the default sort key.
func (b *ApplyBuffer{{.N}}[{{.Params}}]) Add(target ecs.Entity, {{.Args}}) error {
	return record{{.N}}(b.buffer, 0, math.MaxInt32, target, {{.Values}})
}

// AddWithKey records a command. Commands on the same target are applied in ascending key order.
func (b *ApplyBuffer{{.N}}[{{.Params}}]) AddWithKey(sortKey int32, target ecs.Entity, {{.Args}}) error {
	return record{{.N}}(b.buffer, 0, sortKey, target, {{.Values}})
}

// AsParallelWriter returns a writer that records from several goroutines at once.
func (b *ApplyBuffer{{.N}}[{{.Params}}]) AsParallelWriter() *Writer{{.N}}[{{.Params}}] {
	return &Writer{{.N}}[{{.Params}}]{buffer: b.buffer}
}

// InstantiateBuffer{{.N}} records commands that clone a prefab and write {{.Params}} into the clone.
type InstantiateBuffer{{.N}}[{{.Params}} any] struct {
	*buffer
}

// NewInstantiateBuffer{{.N}} creates an instantiate buffer with one slot per payload type.
func NewInstantiateBuffer{{.N}}[{{.Params}} any](
	reg *ecs.Registry, {{.Slots}}, opts ...Option,
) (*InstantiateBuffer{{.N}}[{{.Params}}], error) {
	b, err := newBuffer(variantInstantiate, reg, []slotSpec{ {{- .Specs -}} }, opts)
	if err != nil {
		return nil, err
	}
	return &InstantiateBuffer{{.N}}[{{.Params}}]{buffer: b}, nil
}

// Add records an instantiation with the default sort key.
func (b *InstantiateBuffer{{.N}}[{{.Params}}]) Add(prefab ecs.Entity, {{.Args}}) error {
	return record{{.N}}(b.buffer, 0, math.MaxInt32, prefab, {{.Values}})
}

// AddWithKey records an instantiation. Lower keys are instantiated first.
func (b *InstantiateBuffer{{.N}}[{{.Params}}]) AddWithKey(sortKey int32, prefab ecs.Entity, {{.Args}}) error {
	return record{{.N}}(b.buffer, 0, sortKey, prefab, {{.Values}})
}

// AsParallelWriter returns a writer that records from several goroutines at once.
func (b *InstantiateBuffer{{.N}}[{{.Params}}]) AsParallelWriter() *Writer{{.N}}[{{.Params}}] {
	return &Writer{{.N}}[{{.Params}}]{buffer: b.buffer}
}

// Writer{{.N}} records into a buffer from several goroutines. Each goroutine must use its own worker
// index in [0, Shards()).
type Writer{{.N}}[{{.Params}} any] struct {
	buffer *buffer
}

// Shards returns the number of worker indices the writer accepts.
func (w *Writer{{.N}}[{{.Params}}]) Shards() int {
	return w.buffer.Shards()
}

// Add records a command with the default sort key into the worker's shard.
func (w *Writer{{.N}}[{{.Params}}]) Add(worker int, target ecs.Entity, {{.Args}}) error {
	return record{{.N}}(w.buffer, worker, math.MaxInt32, target, {{.Values}})
}

// AddWithKey records a command into the worker's shard.
func (w *Writer{{.N}}[{{.Params}}]) AddWithKey(worker int, sortKey int32, target ecs.Entity, {{.Args}}) error {
	return record{{.N}}(w.buffer, worker, sortKey, target, {{.Values}})
}

func record{{.N}}[{{.Params}} any](b *buffer, worker int, sortKey int32, target ecs.Entity, {{.Args}}) error {
	rec, err := b.reserve(worker, target, sortKey)
	if err != nil {
		return err
	}
{{- range .Idx}}
	put(rec, b.schema.slots[{{.}}].word, v{{inc .}})
{{- end}}
	return nil
}
{{end}}`
