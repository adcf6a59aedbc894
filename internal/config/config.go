package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Calendar/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Calendar"
	AppID             = "com.github.tartampluch.go-calendar"
	KeyringService    = "com.github.tartampluch.go-calendar"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.png"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// PermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and rendered output.
	PermUserRW fs.FileMode = 0600

	// PermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	PermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// Calendar Model
// -----------------------------------------------------------------------------

const (
	// DateKeyFormat renders a month-day key such as "11-05". Arguments are
	// the one-based month and the day.
	DateKeyFormat    = "%02d-%02d"
	DateKeyLength    = 5
	DateKeySeparator = '-'

	MonthsPerYear     = 12
	DaysPerWeek       = 7
	MaxWeeksPerMonth  = 6
	FortnightSplitDay = 15

	// Year overview grid: 3 columns by 4 rows on portrait pages, 4 by 3 on landscape.
	YearGridNarrow = 3
	YearGridWide   = 4

	MinYear = 1
	MaxYear = 9999

	JSONIndent = "  "
)

// -----------------------------------------------------------------------------
// Document Defaults
// -----------------------------------------------------------------------------

const (
	DefaultTheme    = "default"
	DefaultLayout   = "fortnight"
	DefaultPageSize = "A4-portrait"

	ThemeClassPrefix = "theme-"
	FormatDocTitle   = "%s %d Calendar" // Month name, year

	// Warning element names
	ElementImage  = "image"
	ElementLayout = "layout"
	ElementLogo   = "logo"

	DefaultImageMIME = "image/jpeg"
	DefaultLogoMIME  = "image/png"
)

// -----------------------------------------------------------------------------
// Output Formats & File Extensions
// -----------------------------------------------------------------------------

const (
	FormatHTML  = "html"
	FormatPDF   = "pdf"
	FormatJSON  = "json"
	FormatVCard = "vcard"

	// FormatOutputName expects year, one-based month and extension.
	FormatOutputName = "calendar-%d-%02d.%s"

	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// ImageExtensions lists the picture types accepted by the file dialogs.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".bmp"}

// SourceExtensions lists the local event source types.
var SourceExtensions = []string{".json", ExtVCF, ExtVCard}

// -----------------------------------------------------------------------------
// CLI Commands
// -----------------------------------------------------------------------------

const (
	CmdRoot      = "go-calendar"
	CmdRootShort = "Render printable monthly calendars"
	CmdRootLong  = `go-calendar renders themed monthly calendars to HTML or PDF.

Events are read from a JSON file, a vCard address book or a local database,
and birthdays and anniversaries are annotated with the years elapsed.`

	CmdRender        = "render [month] [year] [theme] [layout] [pageSize]"
	CmdRenderShort   = "Render one calendar page"
	CmdRenderExample = `  go-calendar render
  go-calendar render 11 2025 ocean weekly A4-landscape --format html
  go-calendar render 2 2026 --events events.json --logo logo.png --logo-align center`
	RenderMaxArgs = 5

	CmdServe      = "serve"
	CmdServeShort = "Serve the calendar HTTP API"

	CmdOptions      = "options"
	CmdOptionsShort = "List themes, layouts, page sizes and formats"

	CmdEvents               = "events"
	CmdEventsShort          = "Manage event files"
	CmdEventsImport         = "import <file.vcf>"
	CmdEventsImportShort    = "Convert a vCard address book to an events file"
	CmdEventsExportICS      = "export-ics <events-file>"
	CmdEventsExportICSShort = "Export the events of one year as iCalendar"
	CmdEventsList           = "list <events-file>"
	CmdEventsListShort      = "Print the annotated events of one year"

	CmdGUI      = "gui"
	CmdGUIShort = "Start the system tray application"
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagConfig     = "config"
	FlagDebug      = "debug"
	FlagThemesFile = "themes-file"
	FlagChrome     = "chrome"
	FlagEvents     = "events"
	FlagVCard      = "vcard"
	FlagImage      = "image"
	FlagLogo       = "logo"
	FlagLogoPos    = "logo-pos"
	FlagLogoAlign  = "logo-align"
	FlagOutput     = "output"
	FlagFormat     = "format"
	FlagHost       = "host"
	FlagPort       = "port"
	FlagDB         = "db"
	FlagWatch      = "watch"
	FlagYear       = "year"

	FlagDescConfig       = "Config file (default ./.go-calendar.yaml or ~/.go-calendar.yaml)"
	FlagDescDebug        = "Enable debug logging"
	FlagDescThemesFile   = "TOML file with additional themes"
	FlagDescChrome       = "Path to the Chrome or Chromium executable used for PDF output"
	FlagDescEvents       = "Events JSON file"
	FlagDescVCard        = "vCard address book used as the event source"
	FlagDescImage        = "Picture printed on a page before the calendar"
	FlagDescLogo         = "Logo printed in the header or footer"
	FlagDescLogoPos      = "Logo position: auto, header or footer"
	FlagDescLogoAlign    = "Logo alignment: left, center or right"
	FlagDescOutput       = "Output file (default calendar-YYYY-MM.<format>)"
	FlagDescOutputStdout = "Output file (default stdout)"
	FlagDescFormat       = "Output format: html or pdf"
	FlagDescHost         = "Address to bind the HTTP server to"
	FlagDescPort         = "Port of the HTTP server"
	FlagDescDB           = "SQLite database holding the shared events"
	FlagDescWatch        = "Reload the events file when it changes"
	FlagDescYear         = "Year to annotate (default current year)"

	MsgVersionOutput = "%s version %s (%s, %s/%s)\n"
)

// -----------------------------------------------------------------------------
// Configuration Keys (viper)
// -----------------------------------------------------------------------------

const (
	KeyHost       = "host"
	KeyPort       = "port"
	KeyDB         = "db"
	KeyEvents     = "events"
	KeyThemesFile = "themes_file"
	KeyChromePath = "chrome_path"
	KeyWatch      = "watch"
	KeyDebug      = "debug"

	ConfigFileName = ".go-calendar"
	ConfigFileType = "yaml"
	EnvPrefix      = "GOCAL"
)

// -----------------------------------------------------------------------------
// CLI Output
// -----------------------------------------------------------------------------

const (
	OutRendered   = "Rendered %s to %s\n"
	OutWarning    = "warning: %s\n"
	OutOptionRow  = "%-16s %s\n"
	OutEventRow   = "%s  %-12s %s\n"
	OutImported   = "Imported %d dates from %d cards (%d duplicates, %d skipped)\n"
	OutContactRow = "%s  %-12s %-24s %4s  %s\n"
	OutNoYear     = "-"
	OutExported   = "Exported %d events for %d\n"
	ListSeparator = ", "

	OptLabelThemes        = "themes:"
	OptLabelLayouts       = "layouts:"
	OptLabelPageSizes     = "page sizes:"
	OptLabelFormats       = "formats:"
	OptLabelLogoPositions = "logo positions:"
	OptLabelLogoAligns    = "logo alignments:"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth  = 600
	GeneratorWindowWidth = 640

	WindowGenerator = "generator"
	WindowSettings  = "settings"
	WindowEvents    = "events"

	// Preference Keys
	PrefCardDAVURL   = "carddav_url"
	PrefUsername     = "username"
	PrefLanguage     = "language"
	PrefInterval     = "refresh_interval_min"
	PrefSourceMode   = "source_mode"
	PrefLocalPath    = "local_path"
	PrefLastRun      = "last_run_version"
	PrefLastTheme    = "last_theme"
	PrefLastLayout   = "last_layout"
	PrefLastPageSize = "last_page_size"
	PrefLastFormat   = "last_format"
	PrefOutputDir    = "output_dir"

	// IdleTick keeps the worker loop alive while automatic reloads are disabled.
	IdleTick = 1 * time.Hour
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// UI Events Window Constants
// -----------------------------------------------------------------------------

const (
	EventsWinWidth  = 560
	EventsWinHeight = 420
	EventColumns    = 3

	// Table Column IDs
	ColIDDate     = 0
	ColIDCategory = 1
	ColIDTitle    = 2

	ColWidthDate     = 90
	ColWidthCategory = 140
	ColWidthTitle    = 300

	TablePlaceholder = "Cell Content"

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
	LayoutColumnsTriple = 3
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	LocaleDir    = "locales"
	LocalePrefix = "active."
	LocaleSuffix = ".json"

	TKeyMenuGenerate   = "menu_generate"
	TKeyMenuReload     = "menu_reload"
	TKeyMenuSettings   = "menu_settings"
	TKeyTrayStatus     = "tray_status"      // Requires Count > 0
	TKeyTrayStatusZero = "tray_status_zero" // Explicit key for 0
	TKeyNotifStart     = "notif_start"
	TKeyNotifSuccess   = "notif_success"
	TKeyNotifError     = "notif_error"
	TKeyWinGenerator   = "win_generator"
	TKeyWinSettings    = "win_settings"
	TKeyWinEvents      = "win_events" // Requires Year

	TKeyLblCalendar     = "lbl_calendar"
	TKeyLblAssets       = "lbl_assets"
	TKeyLblMonth        = "lbl_month"
	TKeyLblYear         = "lbl_year"
	TKeyLblTheme        = "lbl_theme"
	TKeyLblLayout       = "lbl_layout"
	TKeyLblPageSize     = "lbl_page_size"
	TKeyLblFormat       = "lbl_format"
	TKeyLblImage        = "lbl_image"
	TKeyLblLogo         = "lbl_logo"
	TKeyLblLogoPosition = "lbl_logo_position"
	TKeyLblLogoAlign    = "lbl_logo_align"
	TKeyLblOutput       = "lbl_output"
	TKeyLblFooter       = "lbl_footer"
	TKeyLblLanguage     = "lbl_language"
	TKeyHelpLanguage    = "help_language"
	TKeyLblRefresh      = "lbl_refresh"
	TKeyLblMinutes      = "lbl_minutes"
	TKeyHelpInterval    = "help_interval"
	TKeyLblGeneral      = "lbl_general"
	TKeyLblSource       = "lbl_source"
	TKeyLblURL          = "lbl_url"
	TKeyHelpURL         = "help_url"
	TKeyLblUser         = "lbl_user"
	TKeyLblPass         = "lbl_pass"
	TKeyModeWeb         = "mode_web"
	TKeyModeLocal       = "mode_local"

	TKeyBtnGenerate = "btn_generate"
	TKeyBtnEvents   = "btn_events"
	TKeyBtnSettings = "btn_settings"
	TKeyBtnSave     = "btn_save"
	TKeyBtnCancel   = "btn_cancel"
	TKeyBtnBrowse   = "btn_browse"

	TKeyStatusWorking = "status_working"
	TKeyStatusFailed  = "status_failed"
	TKeyStatusDone    = "status_done" // Requires Path, Warnings

	// Column Headers
	TKeyColDate     = "col_date"
	TKeyColCategory = "col_category"
	TKeyColTitle    = "col_title"

	// TKeyCategoryPrefix is joined with an event category, e.g. "category_birthday".
	TKeyCategoryPrefix = "category_"

	// Validation Errors (UI)
	TKeyErrYearReq   = "err_year_required"
	TKeyErrYearRange = "err_year_range"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb     = "web"
	SourceModeLocal   = "local"
	DefaultPort       = "8080"
	DefaultRefreshMin = 60
	DefaultLanguage   = "en"
	DefaultLeapYear   = 2000              // Leap year fallback for dates like --02-29
	UIDSalt           = "go-calendar-v1-" // Salt for deterministic UID generation
	DisabledInterval  = 0

	SourceNameRequest = "request"
	SourceNameDB      = "database"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Calendar//Engine//EN"
	ICalCalName = "Calendar"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gocalendar"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropDescription = "DESCRIPTION"
	PropCategories  = "CATEGORIES"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY        = "BDAY"
	VCardAnniversary = "ANNIVERSARY"
	VCardFN          = "FN"
	VCardN           = "N"

	// Generated first lines, the name is the only argument.
	FormatVCardBirthday    = "%s's Birthday"
	FormatVCardAnniversary = "%s's Anniversary"
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// Limits
	MinPort            = 1
	MaxPort            = 65535
	MaxUploadSize      = 10 << 20 // 10MB per image or logo
	MaxRequestBodySize = 50 << 20 // 50MB per request

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	PDFTimeout          = 60 * time.Second
	RenderTimeout       = 90 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 120 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	WatchDebounce       = 250 * time.Millisecond
	RetryAfterSeconds   = "10"
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	AddrSeparator       = ":"
	BlankPageURL        = "about:blank"

	// Per client rate limiting
	RateLimitRPS             = 5.0
	RateLimitBurst           = 30
	RateLimitCleanupInterval = 1 * time.Minute
	RateLimitIdleTTL         = 3 * time.Minute
)

// -----------------------------------------------------------------------------
// HTTP Routes & Parameters
// -----------------------------------------------------------------------------

const (
	RouteHealth    = "/health"
	RouteMetrics   = "/metrics"
	RouteAPI       = "/api"
	RouteOptions   = "/options"
	RouteEvents    = "/events"
	RouteEventsICS = "/events.ics"
	RouteEventKey  = "/events/{key}"
	RouteCalendar  = "/calendar"

	ParamMonth        = "month"
	ParamYear         = "year"
	ParamTheme        = "theme"
	ParamLayout       = "layout"
	ParamPageSize     = "pageSize"
	ParamFormat       = "format"
	ParamLogoPosition = "logoPosition"
	ParamLogoAlign    = "logoAlign"
	ParamEvents       = "events"
	ParamImage        = "image"
	ParamLogo         = "logo"
	ParamKey          = "key"

	ServiceName      = "Calendar Generator API"
	HealthStatusOK   = "ok"
	MetricsNamespace = "gocal"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType        = "Content-Type"
	HeaderContentLength      = "Content-Length"
	HeaderContentDisposition = "Content-Disposition"
	HeaderCacheControl       = "Cache-Control"
	HeaderETag               = "ETag"
	HeaderRetryAfter         = "Retry-After"
	HeaderXContentType       = "X-Content-Type-Options"
	HeaderUserAgent          = "User-Agent"
	HeaderIfNoneMatch        = "If-None-Match"
	HeaderRequestID          = "X-Request-ID"
	HeaderWarning            = "X-Calendar-Warning"
	HeaderForwardedFor       = "X-Forwarded-For"

	MimeJSON              = "application/json"
	MimeMultipart         = "multipart/form-data"
	MimeHTML              = "text/html; charset=utf-8"
	MimePDF               = "application/pdf"
	MimeTextCalendar      = "text/calendar; charset=utf-8"
	MimeNoSniff           = "nosniff"
	CacheControlPrivate   = "private, no-cache"
	DispositionAttachment = "attachment"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Database
// -----------------------------------------------------------------------------

const (
	SQLiteDriver = "sqlite"
	DBMaxConns   = 1
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	// Calendar model
	ErrDateKey         = "invalid date key"
	ErrEventCategory   = "unknown event category"
	ErrEventLines      = "event has no lines"
	ErrEventsNotObject = "events document must be a JSON object"
	ErrEventsLoad      = "failed to load events from"
	ErrEventsEncode    = "failed to encode events"

	// Themes & layouts
	ErrThemeDecode     = "failed to decode themes"
	ErrThemeDuplicate  = "duplicate theme id"
	ErrThemeID         = "invalid theme id"
	ErrThemeNoDefault  = "theme registry has no default theme"
	ErrThemeRole       = "theme is missing a color role"
	ErrThemeSelector   = "theme override has an empty selector"
	ErrUnknownLayout   = "unknown layout"
	ErrUnsupportedSize = "layout not designed for page size"

	// Document
	ErrInvalidMonth = "month out of range"
	ErrLogoPosition = "invalid logo position"
	ErrLogoAlign    = "invalid logo alignment"
	ErrAssetEmpty   = "asset is empty"
	ErrAssetSkipped = "asset skipped"
	ErrRenderHTML   = "failed to render HTML"
	ErrInvalidYear  = "year out of range"
	ErrMonthRange   = "month must be between 1 and 12"

	// Generation
	ErrFormatUnsupported = "unsupported output format"
	ErrRasterizerMissing = "no PDF rasterizer configured"
	ErrRasterize         = "failed to rasterize PDF"
	ErrGeneratorMissing  = "internal error: generator is not initialized"
	ErrWriteOutput       = "failed to write output"

	// Sources
	ErrSourceOpen       = "failed to open event source"
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrRequestBuild     = "failed to build request"
	ErrNetwork          = "network error"
	ErrUnexpectedStatus = "unexpected HTTP status"
	ErrDateParse        = "unable to parse date"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrWatch            = "failed to watch events file"

	// Database
	ErrDBOpen    = "failed to open events database"
	ErrDBSchema  = "failed to create events schema"
	ErrDBQuery   = "failed to query events"
	ErrDBCorrupt = "corrupt event row"
	ErrDBWrite   = "failed to write events"

	// Server
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrPortRange      = "server port must be a number between 1 and 65535"
	ErrWriteResp      = "failed to write response body"

	// Startup & configuration
	ErrSettings         = "failed to decode settings"
	ErrDotEnv           = "failed to load .env file"
	ErrConfigFile       = "failed to read config file"
	ErrThemesFile       = "failed to load themes file"
	ErrSeedEvents       = "failed to seed events"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInvalidMonth    = "Month must be between 1 and 12"
	HTTPMsgInvalidYear     = "Year must be between 1 and 9999"
	HTTPMsgInvalidLayout   = "Invalid layout. Available: %s"
	HTTPMsgInvalidFormat   = "Invalid format. Available: html, pdf"
	HTTPMsgInvalidEvents   = "Invalid events JSON format"
	HTTPMsgInvalidKey      = "Event key must be MM-DD"
	HTTPMsgInvalidForm     = "Invalid multipart form"
	HTTPMsgInvalidBody     = "Invalid request body"
	HTTPMsgFileTooLarge    = "Uploaded file is too large"
	HTTPMsgTooManyRequests = "Too many requests, please slow down."
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackTrayError   = "Go Calendar: Reload Error"
	FallbackTrayDefault = "Go Calendar (%d events)"
	FallbackTrayLabel   = "Go Calendar"
	FallbackName        = "Unknown"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleSyncError = "Reload Error"

	PlaceholderURL = "https://..."
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting      = "Starting application"
	MsgAppStop          = "Application stopped gracefully"
	MsgConfigLoaded     = "Configuration loaded"
	MsgCtxCancel        = "Context cancelled, shutting down UI"
	MsgLogWarning       = "Warning: %s at %s: %v\n"
	MsgSyncReq          = "Reload requested"
	MsgSyncFailed       = "Reload failed. Check logs."
	MsgReloadFailed     = "Event reload failed"
	MsgUpdateSync       = "Updating reload interval"
	MsgWorkerStart      = "Background worker started"
	MsgWorkerStop       = "Worker stopping due to context cancellation"
	MsgNoSource         = "No event source configured"
	MsgEventsLoaded     = "Events loaded"
	MsgGenSuccess       = "Calendar generation successful"
	MsgOutputWritten    = "Calendar written"
	MsgRenderWarning    = "Calendar rendered with a warning"
	MsgPDFRendered      = "PDF rendered"
	MsgThemeFallback    = "Unknown theme, using default"
	MsgPageSizeFallback = "Unknown page size, using A4 portrait"
	MsgSavePrefs        = "Saving preferences"
	MsgKeyringSave      = "Failed to store password in keyring"
	MsgPassFail         = "Password retrieval failed (might be empty)"
	MsgOpenWin          = "Opening window"

	MsgFetchStart       = "Fetching event source"
	MsgFetchDownloading = "Downloading event source"
	MsgFetchBadStatus   = "Event source returned an error status"
	MsgSkippedCard      = "Skipping malformed vCard"
	MsgSkippedDate      = "Skipping invalid date format"
	MsgDuplicateKey     = "Date already used by another card, skipping"
	MsgImportDone       = "vCard import finished"
	MsgExportDone       = "iCalendar export finished"

	MsgWatchStart = "Watching events file"
	MsgWatchStop  = "Stopped watching events file"
	MsgWatchError = "Events file watcher error"

	MsgDBOpened     = "Events database opened"
	MsgDBSaved      = "Events saved to database"
	MsgDBSaveFailed = "Failed to save events to database"

	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgRequestServed   = "Request served"
	MsgRequestRejected = "Request rejected"
	MsgRequestFailed   = "Request failed"

	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent     = "component"
	LogKeyError         = "error"
	LogKeyURL           = "url"
	LogKeyStatus        = "status_code"
	LogKeyFile          = "file"
	LogKeyLang          = "lang"
	LogKeyKey           = "key"
	LogKeyMode          = "mode"
	LogKeyInterval      = "interval"
	LogKeyOld           = "old"
	LogKeyNew           = "new"
	LogKeyUser          = "user"
	LogKeyTotal         = "total_cards"
	LogKeyFound         = "dates_found"
	LogKeyDuplicates    = "duplicates"
	LogKeySkipped       = "skipped"
	LogKeySizeBytes     = "size_bytes"
	LogKeyContentLength = "content_length"
	LogKeyManual        = "manual"
	LogKeyValue         = "value"
	LogKeyStats         = "stats"
	LogKeyCount         = "count"
	LogKeyName          = "name"
	LogKeyDuration      = "duration_ms"
	LogKeySource        = "source"
	LogKeyWindow        = "window"
	LogKeyCommand       = "command"
	LogKeyAddr          = "addr"

	// Rendering
	LogKeyMonth     = "month"
	LogKeyYear      = "year"
	LogKeyTheme     = "theme"
	LogKeyLayout    = "layout"
	LogKeyPageSize  = "page_size"
	LogKeyLandscape = "landscape"
	LogKeyFormat    = "format"
	LogKeyElement   = "element"
	LogKeyWarning   = "warning"
	LogKeyWarnings  = "warnings"
	LogKeyHTMLBytes = "html_bytes"
	LogKeyPDFBytes  = "pdf_bytes"

	// HTTP access
	LogKeyMethod    = "method"
	LogKeyRoute     = "route"
	LogKeyRequestID = "request_id"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompUISet    = "ui_settings"
	CompEngine   = "engine"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompWorker   = "worker"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompEvents   = "events"
	CompDocument = "document"
	CompPDF      = "pdf"
	CompImport   = "import"
	CompExport   = "export"
	CompWatcher  = "watcher"
	CompEventDB  = "eventdb"
)
