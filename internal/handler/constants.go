package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"

	// RouteDashboard is the dashboard admin route.
	RouteDashboard = "/dashboard"
	// RouteUsers is the users admin route.
	RouteUsers = "/users"
	// RouteSeekers is the job seekers admin route.
	RouteSeekers = "/seekers"
	// RoutePosts is the job posts admin route.
	RoutePosts = "/posts"
	// RouteBanners is the banners admin route.
	RouteBanners = "/banners"
	// RouteLogs is the auth logs admin route.
	RouteLogs = "/logs"
	// RouteEvents is the event log admin route.
	RouteEvents = "/events"
	// RouteNotifications is the toast notifications route.
	RouteNotifications = "/notifications"
)

// Redirect targets.
const (
	redirectLogin     = RouteLogin
	redirectDashboard = "/admin" + RouteDashboard
	redirectUsers     = "/admin" + RouteUsers
	redirectPosts     = "/admin" + RoutePosts
	redirectBanners   = "/admin" + RouteBanners
)
