package InputParameters

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/femprep/fe"
	"github.com/notargets/femprep/reference"
)

// Parameters obtained from the YAML input file
type ProblemParameters struct {
	Title       string                    `yaml:"Title"`
	ElementType string                    `yaml:"ElementType"`
	GaussOrder  int                       `yaml:"GaussOrder"`
	Vec         int                       `yaml:"Vec"`
	PlaneTol    float64                   `yaml:"PlaneTol"` // tolerance for plane membership, default 1.e-6
	BCs         map[string]DirichletGroup `yaml:"BCs"`      // key is the BC group name
}

// DirichletGroup prescribes a constant value for one solution component on
// an axis-aligned plane of nodes, e.g. Plane "x=0"
type DirichletGroup struct {
	Plane     string  `yaml:"Plane"`
	Component int     `yaml:"Component"`
	Value     float64 `yaml:"Value"`
}

func (ip *ProblemParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ip); err != nil {
		return err
	}
	return ip.Validate()
}

func (ip *ProblemParameters) Validate() (err error) {
	et, err := reference.ParseElementType(ip.ElementType)
	if err != nil {
		return
	}
	props, _ := reference.GetProperties(et)
	if ip.Vec < 1 {
		return fmt.Errorf("Vec must be at least 1, got %d", ip.Vec)
	}
	if ip.GaussOrder < 0 {
		return fmt.Errorf("GaussOrder must be non-negative, got %d", ip.GaussOrder)
	}
	for name, bc := range ip.BCs {
		var axis int
		if axis, _, err = parsePlane(bc.Plane); err != nil {
			return fmt.Errorf("BCs[%s]: %v", name, err)
		}
		if axis >= props.Dim {
			return fmt.Errorf("BCs[%s]: plane %q needs axis %d, element type %q is %dD",
				name, bc.Plane, axis, et, props.Dim)
		}
		if bc.Component < 0 || bc.Component >= ip.Vec {
			return fmt.Errorf("BCs[%s]: component %d outside [0,%d)", name, bc.Component, ip.Vec)
		}
	}
	return
}

func (ip *ProblemParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t\t= Element Type\n", ip.ElementType)
	fmt.Printf("[%d]\t\t\t\t= Gauss Order\n", ip.GaussOrder)
	fmt.Printf("[%d]\t\t\t\t= Vector Components\n", ip.Vec)
	for _, key := range ip.sortedBCNames() {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
}

// DirichletBCs converts the configured groups into the callable form the
// setup consumes, in group-name order so repeated runs apply groups (and
// therefore last-write-wins overlaps) deterministically
func (ip *ProblemParameters) DirichletBCs() (bcs []fe.DirichletBC, err error) {
	tol := ip.PlaneTol
	if tol == 0 {
		tol = 1.e-6
	}
	props, err := reference.GetProperties(reference.ElementType(ip.ElementType))
	if err != nil {
		return
	}
	for _, name := range ip.sortedBCNames() {
		var (
			group = ip.BCs[name]
			axis  int
			plane float64
		)
		if axis, plane, err = parsePlane(group.Plane); err != nil {
			err = fmt.Errorf("BCs[%s]: %v", name, err)
			return
		}
		if axis >= props.Dim {
			err = fmt.Errorf("BCs[%s]: plane %q needs axis %d, element type %q is %dD",
				name, group.Plane, axis, ip.ElementType, props.Dim)
			return
		}
		val := group.Value
		bcs = append(bcs, fe.DirichletBC{
			Location: fe.AtPoints(func(p []float64) bool {
				return math.Abs(p[axis]-plane) < tol
			}),
			Component: group.Component,
			Value:     func([]float64) float64 { return val },
		})
	}
	return
}

func (ip *ProblemParameters) sortedBCNames() (keys []string) {
	keys = make([]string, 0, len(ip.BCs))
	for k := range ip.BCs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}

// parsePlane splits an axis-aligned plane spec of the form "x=0", "y=1.5"
// or "z=-2" into the coordinate axis and plane position
func parsePlane(spec string) (axis int, plane float64, err error) {
	parts := strings.SplitN(spec, "=", 2)
	if len(parts) != 2 {
		err = fmt.Errorf("malformed plane spec %q, want e.g. \"x=0\"", spec)
		return
	}
	switch strings.TrimSpace(strings.ToLower(parts[0])) {
	case "x":
		axis = 0
	case "y":
		axis = 1
	case "z":
		axis = 2
	default:
		err = fmt.Errorf("malformed plane spec %q, axis must be x, y or z", spec)
		return
	}
	plane, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		err = fmt.Errorf("malformed plane spec %q: %v", spec, err)
	}
	return
}
