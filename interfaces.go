package jsonschema2ast

import "fmt"

// buildInterface implements §4.5. schema must already be classified
// NAMED_SCHEMA or UNNAMED_SCHEMA; named reports which, and forces a fatal
// NewNameRequiredError when a name cannot be derived for a NAMED_SCHEMA.
func buildInterface(schema *Schema, named bool, path string, namer *NameGenerator, defs *DefinitionsIndex, opts Options, translate translateFunc) (*Node, error) {
	anyKind := anyKindFor(opts)
	name := ""
	if n, ok := namer.Generate(SeedFor(schema, defs)); ok {
		name = n
	} else if named {
		return nil, NewNameRequiredError(path, "NAMED_SCHEMA")
	}

	params := make([]Param, 0, len(schema.Properties))
	for _, prop := range schema.Properties {
		typ, err := translate(prop.Schema, path+"/properties/"+prop.Key)
		if err != nil {
			return nil, err
		}
		params = append(params, Param{
			Name:     prop.Key,
			Type:     typ,
			Optional: !contains(schema.Required, prop.Key),
		})
	}

	catchAllFilled := false
	if len(schema.PatternProperties) == 1 && schema.AdditionalProperties.isAbsentOrFalse() {
		only := schema.PatternProperties[0]
		typ, err := translate(only.Schema, path+"/patternProperties/"+only.Key)
		if err != nil {
			return nil, err
		}
		typ.Comment = joinComment(typ.Comment, fmt.Sprintf("pattern: %s", only.Key))
		params = append(params, Param{
			Name:    "key",
			Type:    typ,
			KeyType: &Node{Kind: KindString},
		})
		catchAllFilled = true
	} else {
		for _, pp := range schema.PatternProperties {
			typ, err := translate(pp.Schema, path+"/patternProperties/"+pp.Key)
			if err != nil {
				return nil, err
			}
			params = append(params, Param{
				Name:            pp.Key,
				Type:            typ,
				PatternProperty: true,
			})
		}
	}

	if opts.UnreachableDefinitions {
		for _, def := range schema.Definitions {
			typ, err := translate(def.Schema, path+"/definitions/"+def.Key)
			if err != nil {
				return nil, err
			}
			typ.Comment = joinComment(typ.Comment, fmt.Sprintf("definition: %s", def.Key))
			params = append(params, Param{
				Name:                  def.Key,
				Type:                  typ,
				UnreachableDefinition: true,
			})
		}
	}

	if !catchAllFilled {
		switch {
		case schema.AdditionalProperties.IsBooleanTrue():
			params = append(params, Param{Name: "key", KeyType: &Node{Kind: KindString}, Type: &Node{Kind: anyKind}})
		case schema.AdditionalProperties != nil && schema.AdditionalProperties.Boolean == nil:
			typ, err := translate(schema.AdditionalProperties, path+"/additionalProperties")
			if err != nil {
				return nil, err
			}
			params = append(params, Param{Name: "key", KeyType: &Node{Kind: KindString}, Type: typ})
		}
	}

	if schema.PropertyNames != nil && len(schema.PropertyNames.Enum) > 0 {
		return buildPropertyNamesInterface(schema, name, params, path, anyKind, translate)
	}

	node := &Node{Kind: KindInterface, Name: name, Params: params}

	for i, ext := range schema.Extends {
		extPath := fmt.Sprintf("%s/extends/%d", path, i)
		built, err := translate(ext, extPath)
		if err != nil {
			return nil, err
		}
		if built.Kind != KindInterface && built.Kind != KindReference {
			return nil, NewInvalidSuperTypeError(extPath, built.Kind)
		}
		node.Extends = append(node.Extends, built)
	}

	return node, nil
}

// buildPropertyNamesInterface implements §4.5 step 6: a propertyNames
// constraint that is enum-like (a named, concrete set of allowed keys)
// splits the interface into a mapped-key half and a concrete-keys half.
func buildPropertyNamesInterface(schema *Schema, name string, concreteParams []Param, path string, anyKind Kind, translate translateFunc) (*Node, error) {
	if len(schema.Extends) > 0 {
		return nil, NewInvalidPropertyNamesError(path)
	}

	keyType, err := translate(schema.PropertyNames, path+"/propertyNames")
	if err != nil {
		return nil, err
	}
	if keyType.Kind != KindEnum || keyType.Name == "" {
		return nil, NewInvalidPropertyNamesError(path)
	}

	mapped := &Node{
		Kind: KindInterface,
		Params: []Param{{
			Name:    "key",
			KeyType: keyType,
			Type:    &Node{Kind: anyKind},
		}},
	}

	if len(concreteParams) == 0 {
		mapped.Name = name
		return mapped, nil
	}

	concrete := &Node{Kind: KindInterface, Params: concreteParams}
	return &Node{Kind: KindIntersection, Name: name, Members: []*Node{mapped, concrete}}, nil
}

// anyKindFor resolves the ANY sentinel's actual Kind: UNKNOWN throughout
// when the unknownAny option is set, ANY otherwise (§6, "Configuration
// options consumed").
func anyKindFor(opts Options) Kind {
	if opts.UnknownAny {
		return KindUnknown
	}
	return KindAny
}

func contains(list []string, key string) bool {
	for _, v := range list {
		if v == key {
			return true
		}
	}
	return false
}

func joinComment(existing, addition string) string {
	if existing == "" {
		return addition
	}
	return existing + "; " + addition
}

// isAbsentOrFalse reports whether a *Schema representing additionalProperties
// is either nil or the bare `false` schema.
func (s *Schema) isAbsentOrFalse() bool {
	return s == nil || s.IsBooleanFalse()
}
