package models

// Category is the coarse display grouping a detection is drawn with.
type Category int

// The closed set of display categories.
const (
	CategoryOther Category = iota
	CategoryPerson
	CategoryAnimal
	CategoryVehicle
	CategoryFood
	CategoryElectronics
)

// Categories lists every category, Other last.
var Categories = []Category{
	CategoryPerson,
	CategoryAnimal,
	CategoryVehicle,
	CategoryFood,
	CategoryElectronics,
	CategoryOther,
}

// String returns the lowercase category name, used for metric labels and logs.
func (c Category) String() string {
	switch c {
	case CategoryPerson:
		return "person"
	case CategoryAnimal:
		return "animal"
	case CategoryVehicle:
		return "vehicle"
	case CategoryFood:
		return "food"
	case CategoryElectronics:
		return "electronics"
	default:
		return "other"
	}
}

// CategoryRule assigns a category to the class indices matched by Match.
type CategoryRule struct {
	Category Category
	Match    func(classID int) bool
}

func exactly(id int) func(int) bool {
	return func(classID int) bool { return classID == id }
}

func between(lo, hi int) func(int) bool {
	return func(classID int) bool { return classID >= lo && classID <= hi }
}

func oneOf(ids ...int) func(int) bool {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return func(classID int) bool {
		_, ok := set[classID]
		return ok
	}
}

// CategoryRules is evaluated top to bottom and the first match wins. Anything
// left unmatched is CategoryOther.
var CategoryRules = []CategoryRule{
	{Category: CategoryPerson, Match: exactly(0)},
	{Category: CategoryAnimal, Match: between(14, 23)},
	{Category: CategoryVehicle, Match: oneOf(1, 2, 3, 4, 5, 6, 7, 8)},
	{Category: CategoryFood, Match: between(46, 55)},
	{Category: CategoryElectronics, Match: oneOf(62, 63, 64, 65, 66, 67)},
}
