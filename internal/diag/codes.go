package diag

import "fmt"

// Code is one of the stable, user-visible diagnostic codes. Numbering
// 1-19 is fixed and published; 20 (swizzle-write) and 21 (cyclic
// definition) are additive and must never shift the original numbering.
type Code uint8

const (
	UnknownCode Code = 0

	AssignTargetNotReference Code = 1
	TypeMismatch             Code = 2
	NoSuchField              Code = 3
	NotIndexable             Code = 4
	UnresolvedName           Code = 5
	InvalidConstructionType  Code = 6
	CallArityMismatch        Code = 7
	NoBuiltinOverload        Code = 8
	AddressOfRequiresRef     Code = 9
	DerefRequiresPointer     Code = 10
	MissingAddressSpace      Code = 11
	InvalidAddressSpace      Code = 12
	InvalidTypeLowering      Code = 13
	UnresolvedImport         Code = 14
	ExternalValidatorError   Code = 15
	ParseError               Code = 16
	CodeDisabledByDirective  Code = 17
	NoConstructorOverload    Code = 18
	ParenthesizationRequired Code = 19

	// SwizzleWriteTarget flags an assignment to a vector swizzle with
	// repeated components (e.g. `v.xx = ...`): it does not denote a
	// single storage location.
	SwizzleWriteTarget Code = 20

	// CyclicDefinition flags a global whose initializer leads back to a
	// definition that depends on it (`const a = b; const b = a;`). Every
	// member of the cycle takes the Error type; the cycle is reported
	// once, on the definition where it was detected.
	CyclicDefinition Code = 21
)

func (c Code) String() string {
	switch c {
	case AssignTargetNotReference:
		return "assign-target-not-reference"
	case TypeMismatch:
		return "type-mismatch"
	case NoSuchField:
		return "no-such-field"
	case NotIndexable:
		return "not-indexable"
	case UnresolvedName:
		return "unresolved-name"
	case InvalidConstructionType:
		return "invalid-construction-type"
	case CallArityMismatch:
		return "call-arity-mismatch"
	case NoBuiltinOverload:
		return "no-builtin-overload"
	case AddressOfRequiresRef:
		return "address-of-requires-reference"
	case DerefRequiresPointer:
		return "dereference-requires-pointer"
	case MissingAddressSpace:
		return "missing-address-space"
	case InvalidAddressSpace:
		return "invalid-address-space"
	case InvalidTypeLowering:
		return "invalid-type"
	case UnresolvedImport:
		return "unresolved-import"
	case ExternalValidatorError:
		return "external-validator-error"
	case ParseError:
		return "parse-error"
	case CodeDisabledByDirective:
		return "code-disabled-by-directive"
	case NoConstructorOverload:
		return "no-constructor-overload"
	case ParenthesizationRequired:
		return "parenthesization-required"
	case SwizzleWriteTarget:
		return "swizzle-write-target"
	case CyclicDefinition:
		return "cyclic-definition"
	default:
		return fmt.Sprintf("code(%d)", uint8(c))
	}
}
