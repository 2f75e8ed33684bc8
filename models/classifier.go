package models

import "fmt"

// Classification is the display decision for a single detection.
type Classification struct {
	// Name is the display name from the class table.
	Name string
	// Label is the text drawn next to the box: "<name> <confidence>".
	Label string
	// Category selects the drawing style.
	Category Category
}

// Classifier maps raw class indices to display classifications.
type Classifier struct {
	classes OutputClassSet
	rules   []CategoryRule
}

// NewClassifier creates a classifier over the given class table and rules.
//
// Arguments:
//   - classes: The recognized classes. Indices outside it are rejected.
//   - rules: Ordered category rules, first match wins.
//
// Returns:
//   - *Classifier: The classifier.
func NewClassifier(classes OutputClassSet, rules []CategoryRule) *Classifier {
	return &Classifier{classes: classes, rules: rules}
}

// DefaultClassifier classifies against DisplayClasses and CategoryRules.
func DefaultClassifier() *Classifier {
	return NewClassifier(DisplayClasses, CategoryRules)
}

// Classify resolves the label and category of a detection.
//
// Arguments:
//   - classID: The class index reported by the model.
//   - confidence: The detection confidence in [0,1].
//
// Returns:
//   - Classification: The label and category.
//   - bool: False when classID is not a recognized class; the detection must
//     then be dropped.
func (c *Classifier) Classify(classID int, confidence float32) (Classification, bool) {
	name, ok := c.classes.Lookup(classID)
	if !ok {
		return Classification{}, false
	}
	return Classification{
		Name:     name,
		Label:    fmt.Sprintf("%s %.2f", name, confidence),
		Category: c.CategoryOf(classID),
	}, true
}

// CategoryOf applies the category rules to a class index.
func (c *Classifier) CategoryOf(classID int) Category {
	for _, rule := range c.rules {
		if rule.Match(classID) {
			return rule.Category
		}
	}
	return CategoryOther
}

// Classes returns the class table the classifier accepts.
func (c *Classifier) Classes() OutputClassSet {
	return c.classes
}
