package views

import "github.com/dori/larder/internal/model"

// Messages exchanged with the root model

// AddItemMsg asks the root model to open a blank entry form.
type AddItemMsg struct{}

// EditItemMsg asks the root model to open the entry form prefilled with an
// existing item.
type EditItemMsg struct {
	Item model.Item
}

// ItemSavedMsg reports a successful save from the entry form.
type ItemSavedMsg struct {
	Item model.Item
}

// FormClosedMsg reports the entry form was dismissed without saving.
type FormClosedMsg struct{}
