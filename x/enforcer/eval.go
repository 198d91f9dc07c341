package enforcer

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cloudmeta/catalog/core"
)

func eval(expr core.Expr, rctx core.RequestContext, target map[string]any) (any, error) {
	switch expr.Op {
	case "Const":
		return expr.Const, nil

	case "And":
		for _, arg := range expr.Args {
			result, err := eval(arg, rctx, target)
			if err != nil {
				return nil, err
			}
			b, ok := result.(bool)
			if !ok {
				return nil, fmt.Errorf("bad argument type for And. Expected bool but got %s", reflect.TypeOf(result).String())
			}
			if !b {
				return false, nil
			}
		}
		return true, nil

	case "Or":
		for _, arg := range expr.Args {
			result, err := eval(arg, rctx, target)
			if err != nil {
				return nil, err
			}
			b, ok := result.(bool)
			if !ok {
				return nil, fmt.Errorf("bad argument type for Or. Expected bool but got %s", reflect.TypeOf(result).String())
			}
			if b {
				return true, nil
			}
		}
		return false, nil

	case "Not":
		if len(expr.Args) != 1 {
			return nil, fmt.Errorf("bad argument length for Not. Expected 1 but got %d", len(expr.Args))
		}
		result, err := eval(expr.Args[0], rctx, target)
		if err != nil {
			return nil, err
		}
		b, ok := result.(bool)
		if !ok {
			return nil, fmt.Errorf("bad argument type for Not. Expected bool but got %s", reflect.TypeOf(result).String())
		}
		return !b, nil

	case "Eq":
		if len(expr.Args) != 2 {
			return nil, fmt.Errorf("bad argument length for Eq. Expected 2 but got %d", len(expr.Args))
		}
		lhs, err := eval(expr.Args[0], rctx, target)
		if err != nil {
			return nil, err
		}
		rhs, err := eval(expr.Args[1], rctx, target)
		if err != nil {
			return nil, err
		}
		return reflect.DeepEqual(lhs, rhs), nil

	case "IsAdmin":
		return rctx.IsAdmin, nil

	case "RequesterID":
		return rctx.Requester, nil

	case "RequesterOwner":
		return rctx.Owner, nil

	case "IsOwner":
		owner, _ := target["owner"].(string)
		return owner != "" && owner == rctx.Owner, nil

	case "IsMember":
		return isMember(rctx.Owner, target["members"]), nil

	case "VisibilityIs":
		want, ok := expr.Const.(string)
		if !ok {
			return nil, fmt.Errorf("bad constant type for VisibilityIs. Expected string but got %s", reflect.TypeOf(expr.Const).String())
		}
		visibility, _ := target["visibility"].(string)
		return visibility == want, nil

	case "LoadTarget":
		key, ok := expr.Const.(string)
		if !ok {
			return nil, fmt.Errorf("bad constant type for LoadTarget. Expected string but got %s", reflect.TypeOf(expr.Const).String())
		}
		value, _ := resolveDotNotation(target, key)
		return value, nil

	default:
		return nil, fmt.Errorf("unknown operator: %s", expr.Op)
	}
}

// isMember handles both decoded-json ([]any) and native ([]string)
// member lists.
func isMember(owner string, members any) bool {
	if owner == "" {
		return false
	}
	switch list := members.(type) {
	case []string:
		for _, m := range list {
			if m == owner {
				return true
			}
		}
	case []any:
		for _, m := range list {
			if s, ok := m.(string); ok && s == owner {
				return true
			}
		}
	}
	return false
}

func resolveDotNotation(obj map[string]any, key string) (any, bool) {
	keys := strings.Split(key, ".")
	current := obj
	for i, k := range keys {
		if i == len(keys)-1 {
			value, ok := current[k]
			return value, ok
		}
		next, ok := current[k].(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}
