package program

// OffsetType defines the type of a program offset.
type OffsetType uint8

// offset types.
const (
	UnknownOffset OffsetType = 0
	CodeOffset    OffsetType = 1 << iota
	// DataOffset marks bytes that do not decode to an instruction.
	DataOffset
	// JumpDestination marks the target of a jump instruction.
	JumpDestination
	// CallDestination marks the target of a call, indicating a subroutine.
	CallDestination
	// DataReference marks an address that is loaded into I, usually sprite data.
	DataReference
)

// IsType returns whether the offset is of given type.
func (o *Offset) IsType(typ OffsetType) bool {
	return o.Type&typ != 0
}

// SetType sets the type of the offset.
func (o *Offset) SetType(typ OffsetType) {
	o.Type |= typ
}

// ClearType unsets the type of the offset.
func (o *Offset) ClearType(typ OffsetType) {
	mask := ^(typ)
	o.Type &= mask
}
