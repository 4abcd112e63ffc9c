package console

const (
	RouteLogin      = "/login"
	RouteProjects   = "/projects"
	RouteNewProject = "/projects/new"
	RoutePayments   = "/payments"
)

// Resolve is the route guard: the presence of a session token is the
// sole gate for protected routes. Root goes to the project list,
// unknown paths go to login.
func Resolve(path string, session *Session) string {
	if path == "/" || path == "" {
		path = RouteProjects
	}

	switch path {
	case RouteLogin:
		return RouteLogin
	case RouteProjects, RouteNewProject, RoutePayments:
		if !session.IsAuthenticated() {
			return RouteLogin
		}
		return path
	default:
		return RouteLogin
	}
}
