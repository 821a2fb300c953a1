package types

// AddItemForm mirrors the add-item form fields.
type AddItemForm struct {
	Author string `json:"author"`
	Title  string `json:"title"`
	// Raw text as typed; validated when the operation runs.
	Copies string `json:"copies"`
}

// ItemRefForm mirrors the check-out and return forms.
type ItemRefForm struct {
	ItemID string `json:"itemId"`
}

// FormsState groups the three forms.
type FormsState struct {
	AddItem  AddItemForm `json:"addItem"`
	Checkout ItemRefForm `json:"checkout"`
	Return   ItemRefForm `json:"return"`
}
