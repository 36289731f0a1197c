package harness

import (
	"fmt"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// EncodeCases renders groups in the case-file layout ParseCases reads.
func EncodeCases(groups []Group) ([]byte, error) {
	doc := []byte(`[]`)
	var err error
	for gi, g := range groups {
		if doc, err = sjson.SetRawBytes(doc, fmt.Sprint(gi), []byte(`{"data":[]}`)); err != nil {
			return nil, fmt.Errorf("encoding group %d: %w", gi+1, err)
		}
		path := fmt.Sprintf("%d.data.-1", gi)
		for ci, c := range g.Cases {
			if doc, err = sjson.SetBytes(doc, path, c); err != nil {
				return nil, fmt.Errorf("encoding group %d case %d: %w", gi+1, ci+1, err)
			}
		}
	}
	return pretty.Pretty(doc), nil
}
