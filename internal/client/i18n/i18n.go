// Package i18n is the translation collaborator consumed by the UI layer.
// All user-facing text is looked up by key; a real deployment plugs in its
// own TranslateFunc, and Default serves English for development.
package i18n

// TranslateFunc resolves a message key to user-facing text. Unknown keys
// resolve to the key itself so missing translations stay visible instead
// of blanking the UI.
type TranslateFunc func(key string) string

var defaultMessages = map[string]string{
	"api.errors.invalidRequest":     "Invalid request",
	"api.errors.invalidCredentials": "Invalid login or password",
	"api.errors.userExists":         "A user with this email or phone already exists",
	"api.errors.authRequired":       "Please log in first",
	"api.errors.adminRequired":      "Administrator access required",

	"auth.loginSuccess":    "Welcome back!",
	"auth.registerSuccess": "Account created",
	"auth.logoutSuccess":   "Logged out",

	"cottages.errors.loadError":   "Could not load listings",
	"cottages.errors.filterError": "Could not apply filters",
	"cottages.noResults":          "No listings match your filters",
	"cottages.status.available":   "Available",
	"cottages.status.reserved":    "Reserved",
	"cottages.status.sold":        "Sold",

	"favorites.empty":            "No favorites yet",
	"favorites.added":            "Added to favorites",
	"favorites.removed":          "Removed from favorites",
	"favorites.alreadyAdded":     "Already in favorites",
	"favorites.errors.loadError": "Could not load favorites",
	"favorites.cleared":          "Favorites cleared",

	"admin.users.created": "User created",
	"admin.users.updated": "User updated",
	"admin.users.deleted": "User deleted",
	"admin.cottages.created": "Listing created",
	"admin.cottages.updated": "Listing updated",
	"admin.cottages.deleted": "Listing deleted",
}

// Default returns the built-in English lookup.
func Default() TranslateFunc {
	return func(key string) string {
		if msg, ok := defaultMessages[key]; ok {
			return msg
		}
		return key
	}
}
