package jsonschema2ast

// translateFunc recurses back into the translator to build the AST for a
// child schema, threading the JSON-Pointer-style path for error locations.
type translateFunc func(child *Schema, path string) (*Node, error)

// normalizeArray implements §4.4: it collapses JSON Schema's overlapping
// array shapes (tuple items, homogeneous items with or without item-count
// bounds, itemless arrays with or without bounds) into a single TUPLE-or-
// ARRAY node so downstream consumers only ever see one of two shapes.
//
// A homogeneous `items` schema (or its absence) together with minItems/
// maxItems bounds behaves like the itemless bounded case but with the
// declared element type standing in for ANY: once minItems is positive or
// maxItems is present the result becomes a TUPLE of max(minItems, maxItems-if-finite-else-0)
// copies of the element type, with a spread of that same type iff maxItems
// is absent.
func normalizeArray(schema *Schema, path string, anyKind Kind, translate translateFunc) (*Node, error) {
	if len(schema.ItemsList) > 0 {
		return normalizeTupleForm(schema, path, anyKind, translate)
	}
	return normalizeHomogeneousForm(schema, path, anyKind, translate)
}

func normalizeHomogeneousForm(schema *Schema, path string, anyKind Kind, translate translateFunc) (*Node, error) {
	elem := &Node{Kind: anyKind}
	if schema.Items != nil {
		built, err := translate(schema.Items, path+"/items")
		if err != nil {
			return nil, err
		}
		elem = built
	}

	min := 0
	if schema.MinItems != nil {
		min = *schema.MinItems
	}
	maxFinite := schema.MaxItems != nil
	max := 0
	if maxFinite {
		max = *schema.MaxItems
	}

	if min == 0 && !maxFinite {
		return &Node{Kind: KindArray, Items: elem}, nil
	}

	target := min
	if maxFinite && max > target {
		target = max
	}

	items := make([]*Node, target)
	for i := range items {
		items[i] = elem
	}

	node := &Node{Kind: KindTuple, TupleItems: items}
	if !maxFinite {
		node.RestItems = elem
	}
	return node, nil
}

// normalizeTupleForm handles `items` given as a list of schemas and attaches
// a spread element from additionalItems. With neither a positive minItems
// nor a maxItems the translated element list is kept as declared; otherwise
// it is truncated or padded with ANY to max(minItems, maxItems-if-finite-
// else-0), so a positive minItems without maxItems also cuts the list down
// to minItems elements.
func normalizeTupleForm(schema *Schema, path string, anyKind Kind, translate translateFunc) (*Node, error) {
	params := make([]*Node, 0, len(schema.ItemsList))
	for i, item := range schema.ItemsList {
		built, err := translate(item, path+"/items/"+itoa(i))
		if err != nil {
			return nil, err
		}
		params = append(params, built)
	}

	min := 0
	if schema.MinItems != nil {
		min = *schema.MinItems
	}
	maxFinite := schema.MaxItems != nil
	max := 0
	if maxFinite {
		max = *schema.MaxItems
	}

	target := len(params)
	if maxFinite || min > 0 {
		target = min
		if maxFinite && max > target {
			target = max
		}
	}

	switch {
	case target < len(params):
		params = params[:target]
	case target > len(params):
		for len(params) < target {
			params = append(params, &Node{Kind: anyKind})
		}
	}

	node := &Node{Kind: KindTuple, TupleItems: params}

	switch {
	case schema.AdditionalItems.IsBooleanTrue():
		node.RestItems = &Node{Kind: anyKind}
	case schema.AdditionalItems != nil && schema.AdditionalItems.Boolean == nil:
		rest, err := translate(schema.AdditionalItems, path+"/additionalItems")
		if err != nil {
			return nil, err
		}
		node.RestItems = rest
	}

	return node, nil
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var digits []byte
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}
