package catalog

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// GoValue converts a plain decoded document value (JSON/YAML scalar) into a
// cty.Value. Unsupported shapes degrade to their string form; block templates
// substitute values as literal text anyway.
func GoValue(v any) cty.Value {
	switch val := v.(type) {
	case nil:
		return cty.NilVal
	case string:
		return cty.StringVal(val)
	case bool:
		return cty.BoolVal(val)
	case int:
		return cty.NumberIntVal(int64(val))
	case int64:
		return cty.NumberIntVal(val)
	case uint64:
		return cty.NumberUIntVal(val)
	case float32:
		return cty.NumberFloatVal(float64(val))
	case float64:
		return cty.NumberFloatVal(val)
	default:
		return cty.StringVal(fmt.Sprintf("%v", val))
	}
}

// FormatValue renders a parameter value as the literal text substituted into
// a template. Whole numbers print without a fractional part so pin numbers
// and delays come out as plain integers.
func FormatValue(v cty.Value) string {
	if v == cty.NilVal || v.IsNull() {
		return ""
	}
	switch v.Type() {
	case cty.String:
		return v.AsString()
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return strconv.FormatInt(i, 10)
			}
		}
		return bf.Text('g', -1)
	case cty.Bool:
		if v.True() {
			return "true"
		}
		return "false"
	}
	if out, err := ctyjson.Marshal(v, v.Type()); err == nil {
		return string(out)
	}
	return v.GoString()
}
