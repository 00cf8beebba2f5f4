package data

// NumNumeric and NumCategorical are the lane counts of the census schema.
const (
	NumNumeric     = 5
	NumCategorical = 6

	// RawColumns is the number of comma separated columns in an Adult data row.
	RawColumns = 15
	// LabelColumn is the raw index of the income band.
	LabelColumn = 14
)

// Kind tells numeric attributes from categorical ones.
type Kind int

const (
	Numeric Kind = iota
	Categorical
)

func (k Kind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "categorical"
}

// Attribute describes one retained column of the census layout.
type Attribute struct {
	Name string
	Kind Kind
	Lane int // index into Record.Numeric or Record.Categorical
	Raw  int // column index in the raw row
}

// Schema describes the structure of a dataset.
type Schema struct {
	Attributes []Attribute // retained attributes in flattened record order
	Dropped    []int       // raw columns that are discarded
}

// Census is the fixed 5 numeric / 6 categorical layout of the Adult data set.
// Attributes are listed in the order they appear in a raw row once the
// dropped columns are removed.
var Census = Schema{
	Attributes: []Attribute{
		{Name: "age", Kind: Numeric, Lane: 0, Raw: 0},
		{Name: "workclass", Kind: Categorical, Lane: 0, Raw: 1},
		{Name: "education-num", Kind: Numeric, Lane: 1, Raw: 4},
		{Name: "marital-status", Kind: Categorical, Lane: 1, Raw: 5},
		{Name: "occupation", Kind: Categorical, Lane: 2, Raw: 6},
		{Name: "relationship", Kind: Categorical, Lane: 3, Raw: 7},
		{Name: "race", Kind: Categorical, Lane: 4, Raw: 8},
		{Name: "sex", Kind: Categorical, Lane: 5, Raw: 9},
		{Name: "capital-gain", Kind: Numeric, Lane: 2, Raw: 10},
		{Name: "capital-loss", Kind: Numeric, Lane: 3, Raw: 11},
		{Name: "hours-per-week", Kind: Numeric, Lane: 4, Raw: 12},
	},
	// fnlwgt, education, native-country
	Dropped: []int{2, 3, 13},
}

// NumericName returns the attribute name of numeric lane i.
func (s Schema) NumericName(i int) string {
	return s.laneName(Numeric, i)
}

// CategoricalName returns the attribute name of categorical lane i.
func (s Schema) CategoricalName(i int) string {
	return s.laneName(Categorical, i)
}

func (s Schema) laneName(k Kind, lane int) string {
	for _, a := range s.Attributes {
		if a.Kind == k && a.Lane == lane {
			return a.Name
		}
	}
	return ""
}
