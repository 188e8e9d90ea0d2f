package volt

// TypeKind is the closed set of type categories the analyzer can resolve.
type TypeKind int

const (
	TypeUnknown TypeKind = iota
	TypeVoid

	TypeI8
	TypeI16
	TypeI32
	TypeI64
	TypeI128
	TypeU8
	TypeU16
	TypeU32
	TypeU64
	TypeU128
	TypeF16
	TypeF32
	TypeF64
	TypeF128
	TypeBool
	TypeIsize
	TypeUsize
	TypeCstr
	TypeStr
	TypeTypeLiteral // the "type" primitive itself (type-of-types)

	TypePointer
	TypeReference
	TypeArray
	TypeSlice
	TypeTuple
	TypeStruct
	TypeEnum
	TypeError
	TypeFunction
	TypeGeneric
)

func (k TypeKind) String() string {
	switch k {
	case TypeVoid:
		return "void"
	case TypeI8:
		return "i8"
	case TypeI16:
		return "i16"
	case TypeI32:
		return "i32"
	case TypeI64:
		return "i64"
	case TypeI128:
		return "i128"
	case TypeU8:
		return "u8"
	case TypeU16:
		return "u16"
	case TypeU32:
		return "u32"
	case TypeU64:
		return "u64"
	case TypeU128:
		return "u128"
	case TypeF16:
		return "f16"
	case TypeF32:
		return "f32"
	case TypeF64:
		return "f64"
	case TypeF128:
		return "f128"
	case TypeBool:
		return "bool"
	case TypeIsize:
		return "isize"
	case TypeUsize:
		return "usize"
	case TypeCstr:
		return "cstr"
	case TypeStr:
		return "str"
	case TypeTypeLiteral:
		return "type"
	case TypePointer:
		return "pointer"
	case TypeReference:
		return "reference"
	case TypeArray:
		return "array"
	case TypeSlice:
		return "slice"
	case TypeTuple:
		return "tuple"
	case TypeStruct:
		return "struct"
	case TypeEnum:
		return "enum"
	case TypeError:
		return "error"
	case TypeFunction:
		return "function"
	case TypeGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// primitiveKinds maps every primitive_type keyword token to its TypeKind,
// the table the analyzer consults when resolving a type CST node whose
// base_type alternative is primitive_type.
var primitiveKinds = map[TokenKind]TypeKind{
	TokenI8Kw: TypeI8, TokenI16Kw: TypeI16, TokenI32Kw: TypeI32, TokenI64Kw: TypeI64, TokenI128Kw: TypeI128,
	TokenU8Kw: TypeU8, TokenU16Kw: TypeU16, TokenU32Kw: TypeU32, TokenU64Kw: TypeU64, TokenU128Kw: TypeU128,
	TokenF16Kw: TypeF16, TokenF32Kw: TypeF32, TokenF64Kw: TypeF64, TokenF128Kw: TypeF128,
	TokenBoolKw: TypeBool, TokenIsizeKw: TypeIsize, TokenUsizeKw: TypeUsize,
	TokenTypeKw: TypeTypeLiteral, TokenCstrKw: TypeCstr, TokenStrKw: TypeStr,
}

// PlatformWordSize is the byte width assumed for pointer-sized kinds
// (isize/usize, pointers, references). Target data layout is a downstream
// concern; a single constant keeps Size populated without modeling
// cross-compilation.
const PlatformWordSize = 8

var primitiveSizes = map[TypeKind]int{
	TypeI8: 1, TypeU8: 1, TypeBool: 1,
	TypeI16: 2, TypeU16: 2, TypeF16: 2,
	TypeI32: 4, TypeU32: 4, TypeF32: 4,
	TypeI64: 8, TypeU64: 8, TypeF64: 8,
	TypeI128: 16, TypeU128: 16, TypeF128: 16,
}

// TypeInfo describes a single type. Every field beyond Kind and Name is
// populated only for the kinds that need it. Field and variant entries are
// non-owning references to symbols held by the analyzer for its lifetime.
type TypeInfo struct {
	Kind TypeKind
	Name string

	// Base is the pointed-to/referenced/element/wrapped type for Pointer,
	// Reference, Array, Slice and Error kinds.
	Base *TypeInfo

	// Elements holds tuple member types, in declaration order, for Tuple.
	Elements []*TypeInfo

	// Return is the result type for Function kinds.
	Return *TypeInfo
	// Params holds parameter types, in declaration order, for Function kinds.
	Params []*TypeInfo

	// Fields holds field symbols for Struct kinds, in declaration order.
	Fields []*Symbol

	// Variants holds variant symbols for Enum and Error kinds, in
	// declaration order. A variant symbol's Type is its payload type, nil
	// for bare variants.
	Variants []*Symbol

	// ArrayLen is the element count for an Array kind with a literal size
	// suffix ("[N]"); -1 when the array is unsized ("[]") or the count is
	// not evaluated.
	ArrayLen int

	// Const reports a `const` qualifier on the declaration this type
	// annotates; Nullable reports the '?' optional suffix.
	Const    bool
	Nullable bool

	// Complete is false for a struct/enum/error type whose members have
	// not been populated yet. Declaration collection creates such types
	// incomplete; type resolution fills them in and marks them complete.
	Complete bool

	// Size and Alignment are byte counts. SizeComputed is false until
	// every type this one depends on has been resolved.
	Size         int
	Alignment    int
	SizeComputed bool
}

// Field returns the struct field symbol named name, or nil.
func (t *TypeInfo) Field(name string) *Symbol {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Variant returns the enum/error variant symbol named name, or nil.
func (t *TypeInfo) Variant(name string) *Symbol {
	for _, v := range t.Variants {
		if v.Name == name {
			return v
		}
	}
	return nil
}

func newPrimitiveType(kind TypeKind) *TypeInfo {
	t := &TypeInfo{Kind: kind, Name: kind.String(), ArrayLen: -1, Complete: true}
	if size, ok := primitiveSizes[kind]; ok {
		t.Size = size
		t.Alignment = size
		t.SizeComputed = true
	} else if kind == TypeIsize || kind == TypeUsize {
		t.Size = PlatformWordSize
		t.Alignment = PlatformWordSize
		t.SizeComputed = true
	} else if kind == TypeVoid {
		t.Size = 0
		t.Alignment = 1
		t.SizeComputed = true
	}
	return t
}

// newBuiltinTypeCache builds the shared table of every primitive TypeInfo,
// constructed once per SemanticAnalyzer so that e.g. two occurrences of
// "i32" resolve to the identical *TypeInfo, already marked complete.
func newBuiltinTypeCache() map[TypeKind]*TypeInfo {
	cache := make(map[TypeKind]*TypeInfo)
	cache[TypeVoid] = newPrimitiveType(TypeVoid)
	for _, k := range []TypeKind{
		TypeI8, TypeI16, TypeI32, TypeI64, TypeI128,
		TypeU8, TypeU16, TypeU32, TypeU64, TypeU128,
		TypeF16, TypeF32, TypeF64, TypeF128,
		TypeBool, TypeIsize, TypeUsize, TypeCstr, TypeStr, TypeTypeLiteral,
	} {
		cache[k] = newPrimitiveType(k)
	}
	return cache
}
