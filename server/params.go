package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/rushteam/recblend/core"
)

var validate = validator.New()

// queryID 读取必填的整数 ID 参数。
func queryID(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, core.InvalidInput("missing query parameter %q", name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, core.InvalidInput("query parameter %q must be an integer, got %q", name, raw)
	}
	return id, nil
}

// queryK 读取参数 k，缺省时返回 def；k 必须 >= 1 且不超过 maxK（maxK 为 0 时不限制）。
func queryK(r *http.Request, def, maxK int) (int, error) {
	k := def
	if raw := r.URL.Query().Get("k"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, core.InvalidInput("query parameter \"k\" must be an integer, got %q", raw)
		}
		k = v
	}

	rule := "gte=1"
	if maxK > 0 {
		rule = fmt.Sprintf("gte=1,lte=%d", maxK)
	}
	if err := validate.Var(k, rule); err != nil {
		return 0, core.InvalidInput("query parameter \"k\" out of range (%s), got %d", rule, k)
	}
	return k, nil
}
