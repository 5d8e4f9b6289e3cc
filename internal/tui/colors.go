package tui

// Color constants for the punch TUI theme
const (
	// Base Colors
	ColorCardBackground = "#1F1A12" // Dark amber-brown
	ColorBorder         = "#4A4335" // Warm grey

	// Text Colors
	ColorPrimaryText   = "#F2EEE6" // Field labels, user input, titles
	ColorSecondaryText = "#C2B8A3" // Secondary text
	ColorDisabledText  = "#7A7263" // Muted text, empty values
	ColorPlaceholder   = "#C2B8A3"
	ColorHelpText      = "240" // Dark grey for help text

	// Accent Colors (amber theme)
	ColorAccentMain   = "#D97706" // Logo, headers, active borders
	ColorAccentBright = "#FBBF24" // Clock digits, current step

	// State Colors
	ColorError   = "#EF4444" // Validation errors
	ColorSuccess = "#22C55E" // Clocked out, saved
	ColorMoney   = "#34D399" // Pay amounts
	ColorWarning = "#F59E0B" // Open sessions
)
