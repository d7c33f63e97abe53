package logsink

// Kind tells which value a Field carries.
type Kind uint8

const (
	KindU64 Kind = iota
	KindS64
	KindStr
	KindPtr
	KindS64s
)

// Field is a named value attached to a record.
type Field struct {
	Name string
	Kind Kind

	num  uint64
	str  string
	list []int64
}

func U64(name string, v uint64) Field {
	return Field{Name: name, Kind: KindU64, num: v}
}

func S64(name string, v int64) Field {
	return Field{Name: name, Kind: KindS64, num: uint64(v)}
}

func Str(name string, v string) Field {
	return Field{Name: name, Kind: KindStr, str: v}
}

// Ptr renders an address as 0x followed by 16 hex digits.
func Ptr(name string, v uintptr) Field {
	return Field{Name: name, Kind: KindPtr, num: uint64(v)}
}

// S64s holds on to v; the slice must not change until the record is logged.
func S64s(name string, v []int64) Field {
	return Field{Name: name, Kind: KindS64s, list: v}
}

func (f Field) put(s *Sink) {
	switch f.Kind {
	case KindU64:
		s.putU64(f.num)
	case KindS64:
		s.putS64(int64(f.num))
	case KindStr:
		s.putByte('"')
		s.putStr(f.str)
		s.putByte('"')
	case KindPtr:
		s.putStr("0x")
		s.putHexU64(f.num)
	case KindS64s:
		s.putByte('[')
		for i, v := range f.list {
			if i > 0 {
				s.putStr(", ")
			}
			s.putS64(v)
		}
		s.putByte(']')
	default:
		panic("logsink: invalid field kind")
	}
}
