package metamodel

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"flexmap/internal/common"
)

// LoadFile loads a YAML schema file and builds its package.
// Cross-package type names are resolved against reg, which may be nil.
func LoadFile(path string, reg *Registry) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := errbuilder.CodeInternal
		if errors.Is(err, os.ErrNotExist) {
			code = errbuilder.CodeNotFound
		}

		return nil, errbuilder.New().
			WithCode(code).
			WithMsg(fmt.Sprintf("failed to read schema file %s", path)).
			WithCause(err)
	}

	return Parse(data, reg)
}

// Parse parses YAML schema data and builds its package.
func Parse(data []byte, reg *Registry) (*Package, error) {
	var sf SchemaFile

	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse schema YAML").
			WithCause(err)
	}

	return Build(&sf, reg)
}

// Build validates a schema file and turns it into a package.
func Build(sf *SchemaFile, reg *Registry) (*Package, error) {
	if strings.TrimSpace(sf.NsURI) == "" {
		return nil, invalidSchema("nsuri must be set")
	}

	name := sf.Name
	if name == "" {
		name = common.LastSegment(sf.NsURI)
	}

	b := &builder{
		pkg: &Package{NsURI: sf.NsURI, Name: name},
		reg: reg,
	}

	if err := b.enums(sf.Enums); err != nil {
		return nil, err
	}

	if err := b.classes(sf.Classes); err != nil {
		return nil, err
	}

	if err := b.superTypes(sf.Classes); err != nil {
		return nil, err
	}

	if err := b.features(sf.Classes); err != nil {
		return nil, err
	}

	return b.pkg, nil
}

type builder struct {
	pkg *Package
	reg *Registry
}

func (b *builder) enums(specs []EnumSpec) error {
	for _, e := range specs {
		if e.Name == "" {
			return invalidSchema("enum name must be set")
		}

		if _, ok := b.pkg.DataType(e.Name); ok {
			return invalidSchema(fmt.Sprintf("duplicate enum %s", e.Name))
		}

		if len(e.Literals) == 0 {
			return invalidSchema(fmt.Sprintf("enum %s has no literals", e.Name))
		}

		b.pkg.DataTypes = append(b.pkg.DataTypes, &DataType{
			Name:     e.Name,
			Kind:     ValueKindEnum,
			Literals: append([]string(nil), e.Literals...),
		})
	}

	return nil
}

func (b *builder) classes(specs []ClassSpec) error {
	for _, cs := range specs {
		if cs.Name == "" {
			return invalidSchema("class name must be set")
		}

		if _, ok := b.pkg.Classifier(cs.Name); ok {
			return invalidSchema(fmt.Sprintf("duplicate class %s", cs.Name))
		}

		if _, ok := b.pkg.DataType(cs.Name); ok {
			return invalidSchema(fmt.Sprintf("class %s clashes with an enum of the same name", cs.Name))
		}

		b.pkg.Classifiers = append(b.pkg.Classifiers, &Classifier{
			Package:  b.pkg,
			Name:     cs.Name,
			Abstract: cs.Abstract,
		})
	}

	return nil
}

func (b *builder) superTypes(specs []ClassSpec) error {
	index := make(map[*Classifier]int, len(b.pkg.Classifiers))
	for i, c := range b.pkg.Classifiers {
		index[c] = i
	}

	for i, cs := range specs {
		c := b.pkg.Classifiers[i]

		for _, st := range cs.SuperTypes {
			super, err := b.classifier(st)
			if err != nil {
				return err
			}

			if super == c {
				return invalidSchema(fmt.Sprintf("class %s cannot extend itself", c.Name))
			}

			c.SuperTypes = append(c.SuperTypes, super)
		}
	}

	// Only same-package supertypes can close a cycle: registered packages are complete.
	_, err := topoSort(len(b.pkg.Classifiers), func(i int) []int {
		var deps []int

		for _, s := range b.pkg.Classifiers[i].SuperTypes {
			if j, ok := index[s]; ok {
				deps = append(deps, j)
			}
		}

		return deps
	})

	var ce *cycleError
	if errors.As(err, &ce) {
		names := make([]string, 0, len(ce.nodes))
		for _, n := range ce.nodes {
			names = append(names, b.pkg.Classifiers[n].Name)
		}

		return invalidSchema(fmt.Sprintf("supertype cycle among classes %s", strings.Join(names, ", ")))
	}

	return err
}

func (b *builder) features(specs []ClassSpec) error {
	for i, cs := range specs {
		c := b.pkg.Classifiers[i]
		declared := map[string]bool{}

		checkName := func(name string) error {
			if name == "" {
				return invalidSchema(fmt.Sprintf("class %s has a feature without a name", c.Name))
			}

			if declared[name] {
				return invalidSchema(fmt.Sprintf("duplicate feature %s.%s", c.Name, name))
			}

			declared[name] = true

			return nil
		}

		for _, as := range cs.Attributes {
			if err := checkName(as.Name); err != nil {
				return err
			}

			dt, err := b.dataType(as.Type)
			if err != nil {
				return err
			}

			c.Features = append(c.Features, &Feature{
				Owner:      c,
				Name:       as.Name,
				Kind:       FeatureAttribute,
				Many:       as.Many,
				Changeable: changeable(as.Changeable),
				DataType:   dt,
				Identifier: as.ID,
			})
		}

		for _, rs := range cs.References {
			if err := checkName(rs.Name); err != nil {
				return err
			}

			target, err := b.classifier(rs.Type)
			if err != nil {
				return err
			}

			c.Features = append(c.Features, &Feature{
				Owner:       c,
				Name:        rs.Name,
				Kind:        FeatureReference,
				Many:        rs.Many,
				Changeable:  changeable(rs.Changeable),
				Target:      target,
				Containment: rs.Containment,
			})
		}
	}

	return nil
}

func (b *builder) dataType(name string) (*DataType, error) {
	if name == "" {
		return StringType, nil
	}

	if dt, ok := b.pkg.DataType(name); ok {
		return dt, nil
	}

	if dt, ok := BuiltinDataType(name); ok {
		return dt, nil
	}

	return nil, invalidSchema(fmt.Sprintf("unknown attribute type %s", name))
}

// classifier resolves "Name" within the package or "<nsuri>#Name" in the registry.
func (b *builder) classifier(ref string) (*Classifier, error) {
	if i := strings.LastIndex(ref, "#"); i >= 0 {
		nsURI, name := ref[:i], ref[i+1:]
		if nsURI == b.pkg.NsURI {
			ref = name
		} else {
			if b.reg != nil {
				if c, ok := b.reg.Classifier(ClassifierID{NsURI: nsURI, Name: name}); ok {
					return c, nil
				}
			}

			return nil, invalidSchema(fmt.Sprintf("unknown type %s", ref))
		}
	}

	if c, ok := b.pkg.Classifier(ref); ok {
		return c, nil
	}

	return nil, invalidSchema(fmt.Sprintf("unknown type %s", ref))
}

func invalidSchema(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
}
