package pdfsource

import (
	"fmt"

	"github.com/tsawler/pdfstruct/content"
)

// colorSpaceOf converts a color space object: a family name or an array
// whose first element names the family.
func colorSpaceOf(o any) (*content.ColorSpace, error) {
	switch v := o.(type) {
	case Name:
		if cs, ok := content.DeviceSpace(string(v)); ok {
			return cs, nil
		}
		return nil, fmt.Errorf("color space %q: %w", v, content.ErrNotFound)
	case []any:
		if len(v) == 0 {
			return nil, fmt.Errorf("empty color space array: %w", ErrMalformed)
		}
		family, ok := v[0].(Name)
		if !ok {
			return nil, fmt.Errorf("color space family %v: %w", v[0], ErrMalformed)
		}
		return colorSpaceArray(string(family), v[1:])
	}
	return nil, fmt.Errorf("color space object %T: %w", o, ErrMalformed)
}

func colorSpaceArray(family string, args []any) (*content.ColorSpace, error) {
	arg := func(i int) any {
		if i < len(args) {
			return args[i]
		}
		return nil
	}

	switch family {
	case content.DeviceGray, content.DeviceRGB, content.DeviceCMYK,
		content.CalGray, content.CalRGB:
		cs, _ := content.DeviceSpace(family)
		return cs, nil
	case content.Lab:
		return &content.ColorSpace{Family: content.Lab}, nil
	case content.Pattern:
		return &content.ColorSpace{Family: content.Pattern}, nil

	case content.ICCBased:
		s, ok := arg(0).(Stream)
		if !ok {
			return nil, fmt.Errorf("ICCBased without profile stream: %w", ErrMalformed)
		}
		cs := &content.ColorSpace{Family: content.ICCBased, N: int(numberOr(s.Dict["N"], 0))}
		if alt, ok := s.Dict["Alternate"]; ok {
			if base, err := colorSpaceOf(alt); err == nil {
				cs.Base = base
			}
		}
		return cs, nil

	case content.Indexed, "I":
		base, err := colorSpaceOf(arg(0))
		if err != nil {
			return nil, fmt.Errorf("indexed base: %w", err)
		}
		lookup, err := lookupBytes(arg(2))
		if err != nil {
			return nil, fmt.Errorf("indexed lookup: %w", err)
		}
		return &content.ColorSpace{
			Family: content.Indexed,
			Base:   base,
			HiVal:  int(numberOr(arg(1), 0)),
			Lookup: lookup,
		}, nil

	case content.Separation:
		cs := &content.ColorSpace{Family: content.Separation, N: 1}
		if alt, err := colorSpaceOf(arg(1)); err == nil {
			cs.Base = alt
		}
		return cs, nil

	case content.DeviceN:
		names, _ := arg(0).([]any)
		cs := &content.ColorSpace{Family: content.DeviceN, N: len(names)}
		if alt, err := colorSpaceOf(arg(1)); err == nil {
			cs.Base = alt
		}
		return cs, nil
	}

	if cs, ok := content.DeviceSpace(family); ok {
		return cs, nil
	}
	return nil, fmt.Errorf("color space family %q: %w", family, ErrUnsupported)
}

// lookupBytes returns the palette of an Indexed space, given as a string
// or a stream
func lookupBytes(o any) ([]byte, error) {
	switch v := o.(type) {
	case string:
		return []byte(v), nil
	case Stream:
		return v.Bytes()
	}
	return nil, fmt.Errorf("lookup %T: %w", o, ErrMalformed)
}
