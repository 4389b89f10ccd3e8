package domain

import "testing"

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"myVariable":    "my_variable",
		"MyClass":       "my_class",
		"XMLParser":     "xml_parser",
		"parseXML":      "parse_xml",
		"HTTPSConn":     "https_conn",
		"already_snake": "already_snake",
		"Hello_World":   "hello_world",
		"_privateVar":   "_private_var",
		"__name":        "__name",
		"__init__":      "__init__",
		"__getattr__":   "__getattr__",
		"value2Count":   "value2_count",
		"x":             "x",
		"X":             "x",
		"ABC":           "abc",
		"":              "",
	}

	for input, want := range cases {
		if got := ToSnakeCase(input); got != want {
			t.Errorf("ToSnakeCase(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestToSnakeCaseIdempotent(t *testing.T) {
	inputs := []string{"myVariable", "XMLParser", "Hello_World", "_privateVar", "plain", "__dunder__"}

	for _, input := range inputs {
		once := ToSnakeCase(input)
		if twice := ToSnakeCase(once); twice != once {
			t.Errorf("ToSnakeCase not idempotent for %q: %q -> %q", input, once, twice)
		}
	}
}

func TestToPascalCase(t *testing.T) {
	cases := map[string]string{
		"my_class":     "MyClass",
		"myClass":      "MyClass",
		"MyClass":      "MyClass",
		"xml_parser":   "XmlParser",
		"XMLParser":    "XMLParser",
		"_private_cls": "_PrivateCls",
		"__init__":     "__init__",
		"a":            "A",
		"":             "",
	}

	for input, want := range cases {
		if got := ToPascalCase(input); got != want {
			t.Errorf("ToPascalCase(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestToPascalCaseIdempotent(t *testing.T) {
	inputs := []string{"my_class", "XMLParser", "_private_cls", "Simple"}

	for _, input := range inputs {
		once := ToPascalCase(input)
		if twice := ToPascalCase(once); twice != once {
			t.Errorf("ToPascalCase not idempotent for %q: %q -> %q", input, once, twice)
		}
	}
}

func TestIsPascalCase(t *testing.T) {
	pascal := []string{"MyClass", "XmlParser", "A1b"}
	notPascal := []string{"myClass", "MY_CONST", "My_Class", "ABC", "x", ""}

	for _, name := range pascal {
		if !IsPascalCase(name) {
			t.Errorf("IsPascalCase(%q) = false, want true", name)
		}
	}

	for _, name := range notPascal {
		if IsPascalCase(name) {
			t.Errorf("IsPascalCase(%q) = true, want false", name)
		}
	}
}

func TestDunderNamesNeverChange(t *testing.T) {
	dunders := []string{"__init__", "__call__", "__name__", "__all__"}

	for _, name := range dunders {
		if got := ToSnakeCase(name); got != name {
			t.Errorf("ToSnakeCase(%q) = %q, want unchanged", name, got)
		}

		if got := ToPascalCase(name); got != name {
			t.Errorf("ToPascalCase(%q) = %q, want unchanged", name, got)
		}
	}
}
