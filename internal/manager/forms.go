package manager

// UpdateField sets one field of a form. Edits are accepted in every state,
// including while disconnected or while the form's operation is pending.
func (m *Manager) UpdateField(form FormID, name, value string) error {
	switch form {
	case FormAddItem:
		return m.addItem.UpdateField(name, value)
	case FormCheckout:
		return m.checkout.UpdateField(name, value)
	case FormReturn:
		return m.ret.UpdateField(name, value)
	}
	return unknownFormError{name: string(form)}
}
