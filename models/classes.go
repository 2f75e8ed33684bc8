// Package models - Detection class table and display categories.
package models

// OutputClass represents one detection label.
type OutputClass struct {
	// The integer index returned by the model.
	Index int
	// The human-readable label.
	Name string
}

// OutputClassSet is an immutable index -> display name table.
//
// The zero value is an empty table. Sets are built once with NewOutputClassSet
// and never mutated afterwards, so lookups are safe from any goroutine.
type OutputClassSet struct {
	classes []OutputClass
	byIndex map[int]string
}

// NewOutputClassSet builds a table from the given classes.
//
// Arguments:
//   - classes: The entries of the table. A later entry with a duplicate index
//     replaces the earlier one.
//
// Returns:
//   - OutputClassSet: The read-only table.
func NewOutputClassSet(classes ...OutputClass) OutputClassSet {
	set := OutputClassSet{
		classes: make([]OutputClass, 0, len(classes)),
		byIndex: make(map[int]string, len(classes)),
	}
	position := make(map[int]int, len(classes))
	for _, c := range classes {
		if i, dup := position[c.Index]; dup {
			set.classes[i] = c
		} else {
			position[c.Index] = len(set.classes)
			set.classes = append(set.classes, c)
		}
		set.byIndex[c.Index] = c.Name
	}
	return set
}

// Lookup returns the display name for a class index.
//
// Arguments:
//   - idx: The class index reported by the model.
//
// Returns:
//   - string: The display name, empty when not found.
//   - bool: True when the index is part of the table.
func (s OutputClassSet) Lookup(idx int) (string, bool) {
	name, ok := s.byIndex[idx]
	return name, ok
}

// Contains reports whether idx is part of the table.
func (s OutputClassSet) Contains(idx int) bool {
	_, ok := s.byIndex[idx]
	return ok
}

// Len returns the number of recognized classes.
func (s OutputClassSet) Len() int {
	return len(s.classes)
}

// Classes returns a copy of the table entries in declaration order.
func (s OutputClassSet) Classes() []OutputClass {
	out := make([]OutputClass, len(s.classes))
	copy(out, s.classes)
	return out
}

// DisplayClasses is the table of detection classes this application annotates.
//
// Indices follow the 0-based YOLO class order. 29 and 30 are intentionally
// absent: detections reporting them are dropped without being drawn or counted.
var DisplayClasses = NewOutputClassSet(
	// People and animals.
	OutputClass{0, "Person"},
	OutputClass{14, "Bird"}, OutputClass{15, "Cat"}, OutputClass{16, "Dog"}, OutputClass{17, "Horse"},
	OutputClass{18, "Sheep"}, OutputClass{19, "Cow"}, OutputClass{20, "Elephant"}, OutputClass{21, "Bear"},
	OutputClass{22, "Zebra"}, OutputClass{23, "Giraffe"},

	// Vehicles.
	OutputClass{1, "Bicycle"}, OutputClass{2, "Car"}, OutputClass{3, "Motorcycle"}, OutputClass{4, "Airplane"},
	OutputClass{5, "Bus"}, OutputClass{6, "Train"}, OutputClass{7, "Truck"}, OutputClass{8, "Boat"},

	// Outdoor objects.
	OutputClass{9, "Traffic light"}, OutputClass{10, "Fire hydrant"}, OutputClass{11, "Stop sign"},
	OutputClass{12, "Parking meter"}, OutputClass{13, "Bench"},

	// Accessories.
	OutputClass{24, "Backpack"}, OutputClass{25, "Umbrella"}, OutputClass{26, "Handbag"}, OutputClass{27, "Tie"},
	OutputClass{28, "Suitcase"}, OutputClass{31, "Skis"}, OutputClass{32, "Snowboard"},
	OutputClass{33, "Sports ball"}, OutputClass{34, "Kite"}, OutputClass{35, "Baseball bat"},
	OutputClass{36, "Baseball glove"}, OutputClass{37, "Skateboard"}, OutputClass{38, "Surfboard"},

	// Food and kitchen.
	OutputClass{39, "Bottle"}, OutputClass{40, "Wine glass"}, OutputClass{41, "Cup"}, OutputClass{42, "Fork"},
	OutputClass{43, "Knife"}, OutputClass{44, "Spoon"}, OutputClass{45, "Bowl"},
	OutputClass{46, "Banana"}, OutputClass{47, "Apple"}, OutputClass{48, "Sandwich"}, OutputClass{49, "Orange"},
	OutputClass{50, "Broccoli"}, OutputClass{51, "Carrot"}, OutputClass{52, "Hot dog"}, OutputClass{53, "Pizza"},
	OutputClass{54, "Donut"}, OutputClass{55, "Cake"},

	// Furniture and indoor.
	OutputClass{56, "Chair"}, OutputClass{57, "Couch"}, OutputClass{58, "Potted plant"}, OutputClass{59, "Bed"},
	OutputClass{60, "Dining table"}, OutputClass{61, "Toilet"}, OutputClass{62, "TV"}, OutputClass{63, "Laptop"},
	OutputClass{64, "Mouse"}, OutputClass{65, "Remote"}, OutputClass{66, "Keyboard"}, OutputClass{67, "Cell phone"},

	// Appliances.
	OutputClass{68, "Microwave"}, OutputClass{69, "Oven"}, OutputClass{70, "Toaster"}, OutputClass{71, "Sink"},
	OutputClass{72, "Refrigerator"},

	// Daily items.
	OutputClass{73, "Book"}, OutputClass{74, "Clock"}, OutputClass{75, "Vase"}, OutputClass{76, "Scissors"},
	OutputClass{77, "Teddy bear"}, OutputClass{78, "Hair dryer"}, OutputClass{79, "Toothbrush"},
)
