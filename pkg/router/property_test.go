package router

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// shapeDir turns a compact shape ("a#b": literal a, dynamic, literal b) into
// a directory path with unique parameter names.
func shapeDir(shape string) string {
	parts := make([]string, 0, len(shape))
	for i, c := range shape {
		if c == '#' {
			parts = append(parts, fmt.Sprintf("[p%d]", i))
		} else {
			parts = append(parts, string(c))
		}
	}
	return strings.Join(parts, "/")
}

func TestPathMatchRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("Match(Path(route, params)) returns the same route and params", prop.ForAll(
		func(shapes []string) bool {
			files := make([]string, 0, len(shapes))
			for _, s := range shapes {
				files = append(files, "app/"+shapeDir(s)+"/page.js")
			}
			table, _ := Build(files, Registry{}, WithRoot("app"), WithLogger(quietLogger()))

			for _, route := range table.Routes() {
				params := make(map[string]string, len(route.Params))
				for i, name := range route.Params {
					params[name] = strconv.Itoa(10 + i)
				}
				p, err := route.Path(params)
				if err != nil {
					return false
				}
				m, ok := table.Match(p)
				if !ok || m.Route != route {
					return false
				}
				if len(params) == 0 && len(m.Params) == 0 {
					continue
				}
				if !reflect.DeepEqual(m.Params, params) {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(6, gen.RegexMatch(`[abc#]{1,4}`)),
	))

	properties.Property("literal segments outrank dynamic ones", prop.ForAll(
		func(name string) bool {
			table, _ := Build([]string{
				"app/x/[id]/page.js",
				"app/x/" + name + "/page.js",
			}, Registry{}, WithRoot("app"), WithLogger(quietLogger()))

			m, ok := table.Match("/x/" + name)
			return ok && m.Route.Pattern == "/x/"+name && len(m.Params) == 0
		},
		gen.RegexMatch(`[a-z]{1,8}`),
	))

	properties.TestingRun(t)
}
