package object

import "fmt"

var readers = map[Kind]func(Record) (Object, error){
	KindLine:      func(r Record) (Object, error) { return readLine(r) },
	KindArrow:     func(r Record) (Object, error) { return readArrow(r) },
	KindRectangle: func(r Record) (Object, error) { return readRectangle(r) },
	KindEllipse:   func(r Record) (Object, error) { return readEllipse(r) },
	KindText:      func(r Record) (Object, error) { return readText(r) },
	KindSymbol:    func(r Record) (Object, error) { return readSymbol(r) },
	KindPath:      func(r Record) (Object, error) { return readPath(r) },
	KindConnector: func(r Record) (Object, error) { return readConnector(r) },
	KindImage:     func(r Record) (Object, error) { return readImage(r) },
}

// Deserialize rebuilds an object from its record. It fails with
// ErrUnknownType for an unrecognized tag and ErrMissingField when a field
// the tag requires is absent.
func Deserialize(r Record) (Object, error) {
	k := r.Kind()
	read, ok := readers[k]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, k)
	}
	obj, err := read(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", k, err)
	}
	return obj, nil
}
