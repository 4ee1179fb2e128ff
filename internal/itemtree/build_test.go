package itemtree

import (
	"testing"

	"wgsla/internal/parser"
	"wgsla/internal/source"
)

const sampleModule = `
#import "lighting.wgsl";
#import pkg::math::trig;

struct VertexOut {
  @builtin(position) pos: vec4<f32>,
  @location(0) uv: vec2<f32>,
}

@group(0) @binding(0) var tex: texture_2d<f32>;
@group(0) @binding(1) var<storage, read_write> counters: array<u32>;

const PI: f32 = 3.14159;
override Exposure: f32 = 1.0;
alias Vec = vec4<f32>;

fn square(x: f32) -> f32 {
  return x * x;
}

@fragment
fn main(in: VertexOut) -> @location(0) vec4<f32> {
  return vec4<f32>(in.uv, 0.0, 1.0);
}
`

func buildSample(t *testing.T) (*Tree, *source.Interner) {
	t.Helper()
	fs := source.NewFileSet()
	strs := source.NewInterner()
	id := fs.Open("module.wgsl", []byte(sampleModule))
	f := fs.Get(id)
	tree, _ := parser.Parse(f.ID, f.Content)
	return Build(tree, f.ID, strs), strs
}

func TestBuildCollectsEveryItemKind(t *testing.T) {
	it, strs := buildSample(t)

	counts := map[ItemKind]int{}
	for i := 1; i < len(it.Items); i++ {
		counts[it.Items[i].Kind]++
	}
	want := map[ItemKind]int{
		ItemImport: 2, ItemStruct: 1, ItemVar: 2, ItemConst: 1,
		ItemOverride: 1, ItemAlias: 1, ItemFn: 2,
	}
	for k, n := range want {
		if counts[k] != n {
			t.Errorf("kind %v: got %d items, want %d", k, counts[k], n)
		}
	}
	_ = strs
}

func TestBuildImportStringLiteral(t *testing.T) {
	it, _ := buildSample(t)
	var found bool
	for i := 1; i < len(it.Items); i++ {
		item := it.Items[i]
		if item.Kind != ItemImport {
			continue
		}
		if item.ImportPath == `"lighting.wgsl"` && !item.ImportIsPath {
			found = true
		}
	}
	if !found {
		t.Fatalf("did not find string-literal import with expected text")
	}
}

func TestBuildImportPathForm(t *testing.T) {
	it, _ := buildSample(t)
	var found bool
	for i := 1; i < len(it.Items); i++ {
		item := it.Items[i]
		if item.Kind != ItemImport {
			continue
		}
		if item.ImportIsPath && item.ImportPath == "pkg::math::trig" {
			found = true
		}
	}
	if !found {
		t.Fatalf("did not find path-form import joined as pkg::math::trig")
	}
}

func TestBuildStructFieldsAndAttrs(t *testing.T) {
	it, strs := buildSample(t)
	var s *Item
	for i := 1; i < len(it.Items); i++ {
		if it.Items[i].Kind == ItemStruct {
			s = &it.Items[i]
			break
		}
	}
	if s == nil {
		t.Fatalf("no struct item found")
	}
	if strs.Lookup(s.Name) != "VertexOut" {
		t.Fatalf("struct name = %q, want VertexOut", strs.Lookup(s.Name))
	}
	if len(s.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(s.Fields))
	}
	if strs.Lookup(s.Fields[0].Name) != "pos" || len(s.Fields[0].Attrs) != 1 {
		t.Fatalf("field 0 = %+v, want pos with one attr", s.Fields[0])
	}
	if strs.Lookup(s.Fields[0].Attrs[0].Name) != "builtin" {
		t.Fatalf("field 0 attr name = %q, want builtin", strs.Lookup(s.Fields[0].Attrs[0].Name))
	}
}

func TestBuildVarQualifierResolvesAddressSpaceAndAccess(t *testing.T) {
	it, strs := buildSample(t)
	var counters *Item
	for i := 1; i < len(it.Items); i++ {
		if it.Items[i].Kind == ItemVar && strs.Lookup(it.Items[i].Name) == "counters" {
			counters = &it.Items[i]
		}
	}
	if counters == nil {
		t.Fatalf("did not find 'counters' global var")
	}
	q := counters.Qualifier
	if !q.Present || !q.AddressSpaceOK || !q.AccessOK {
		t.Fatalf("qualifier not fully resolved: %+v", q)
	}
	if q.Access.String() != "read_write" {
		t.Fatalf("access mode = %v, want read_write", q.Access)
	}
}

func TestBuildVarWithoutQualifierHasNoQualifier(t *testing.T) {
	it, strs := buildSample(t)
	var tex *Item
	for i := 1; i < len(it.Items); i++ {
		if it.Items[i].Kind == ItemVar && strs.Lookup(it.Items[i].Name) == "tex" {
			tex = &it.Items[i]
		}
	}
	if tex == nil {
		t.Fatalf("did not find 'tex' global var")
	}
	if tex.Qualifier.Present {
		t.Fatalf("tex has no <...> qualifier in source, Present should be false")
	}
}

func TestBuildFnParamsAndReturnType(t *testing.T) {
	it, strs := buildSample(t)
	var square *Item
	for i := 1; i < len(it.Items); i++ {
		if it.Items[i].Kind == ItemFn && strs.Lookup(it.Items[i].Name) == "square" {
			square = &it.Items[i]
		}
	}
	if square == nil {
		t.Fatalf("did not find fn square")
	}
	if len(square.Params) != 1 || strs.Lookup(square.Params[0].Name) != "x" {
		t.Fatalf("params = %+v, want one param named x", square.Params)
	}
	if !square.ReturnType.IsValid() {
		t.Fatalf("square's return type reference must be captured")
	}
	if !square.Body.IsValid() {
		t.Fatalf("square's body block must be captured")
	}
}

func TestByNameFindsDeclarationsRegardlessOfOrder(t *testing.T) {
	it, strs := buildSample(t)
	name := strs.Intern("main")
	matches := it.ByName(name)
	if len(matches) != 1 || matches[0].Kind != ItemFn {
		t.Fatalf("ByName(main) = %+v, want exactly one fn item", matches)
	}
}

func TestItemLookupRejectsForeignFile(t *testing.T) {
	it, _ := buildSample(t)
	foreign := ItemID{File: it.File + 1, Index: 1}
	if it.Item(foreign) != nil {
		t.Fatalf("Item must reject an ItemID from a different file")
	}
}
