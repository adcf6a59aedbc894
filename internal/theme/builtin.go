package theme

var builtin = []Definition{
	{
		ID:   "default",
		Name: "Default",
		Colors: map[Role]string{
			Primary: "#2c3e50", Secondary: "#3498db", Accent: "#e74c3c",
			Background: "#ffffff", Text: "#2c3e50", Border: "#bdc3c7",
			HeaderBackground: "#34495e", HeaderText: "#ffffff",
			WeekendBackground: "#ecf0f1", TodayBackground: "#fff3cd",
		},
	},
	{
		ID:   "ocean",
		Name: "Ocean",
		Colors: map[Role]string{
			Primary: "#006994", Secondary: "#00a8cc", Accent: "#f39c12",
			Background: "#f8f9fa", Text: "#2c3e50", Border: "#81c7d4",
			HeaderBackground: "#005073", HeaderText: "#ffffff",
			WeekendBackground: "#e8f4f8", TodayBackground: "#d4edda",
		},
	},
	{
		ID:   "sunset",
		Name: "Sunset",
		Colors: map[Role]string{
			Primary: "#c0392b", Secondary: "#e67e22", Accent: "#f39c12",
			Background: "#fef5e7", Text: "#2c3e50", Border: "#f39c12",
			HeaderBackground: "#d35400", HeaderText: "#ffffff",
			WeekendBackground: "#fdebd0", TodayBackground: "#ffe5cc",
		},
	},
	{
		ID:   "minimalist",
		Name: "Minimalist",
		Colors: map[Role]string{
			Primary: "#000000", Secondary: "#555555", Accent: "#000000",
			Background: "#ffffff", Text: "#000000", Border: "#cccccc",
			HeaderBackground: "#f5f5f5", HeaderText: "#000000",
			WeekendBackground: "#fafafa", TodayBackground: "#e8e8e8",
		},
	},
	{
		ID:   "darkred",
		Name: "Dark Red",
		Colors: map[Role]string{
			Primary: "#8B0000", Secondary: "#A52A2A", Accent: "#DC143C",
			Background: "#FFFFFF", Text: "#2c3e50", Border: "#8B0000",
			HeaderBackground: "#4A0000", HeaderText: "#FFB6C1",
			WeekendBackground: "#ecf0f1", TodayBackground: "#fff3cd",
		},
		Overrides: []Override{
			{Selector: ".day-info", Properties: map[string]string{"background": "#000000", "padding": "8px", "border-radius": "4px"}},
			{Selector: ".day-name", Properties: map[string]string{"color": "rgba(230, 13, 45, 0.82)"}},
			{Selector: ".day-number", Properties: map[string]string{"color": "rgba(60, 98, 247, 0.96)"}},
			{Selector: ".day-card.weekend .day-name", Properties: map[string]string{"color": "#FFB6C1"}},
			{Selector: ".day-card.weekend .day-number", Properties: map[string]string{"color": "#FFB6C1"}},
		},
	},
}
