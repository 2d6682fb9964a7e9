package store

const (
	userColumns = `essential_id, user_id, password_hash, status_code, lock_flag, lock_count,
		name, email, org_id, group_id, created_at, created_by, updated_at, updated_by`

	createUser = `INSERT INTO users (user_id, password_hash, status_code, lock_flag, lock_count, name, email, org_id, group_id, created_by, updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
	RETURNING ` + userColumns + `;`

	findUserByUserID = `SELECT ` + userColumns + `
	FROM users
	WHERE user_id = $1;`

	// row-level lock serialises concurrent failed-login updates per user
	lockUserRow = `SELECT ` + userColumns + `
	FROM users
	WHERE user_id = $1
	FOR UPDATE;`

	updateLockState = `UPDATE users
	SET lock_count = $2, lock_flag = $3, updated_at = NOW()
	WHERE user_id = $1;`

	resetLockState = `UPDATE users
	SET lock_count = 0, lock_flag = 'UNLOCKED', updated_at = NOW(), updated_by = $2
	WHERE user_id = $1;`

	updateUserPassword = `UPDATE users
	SET password_hash = $2, lock_count = 0, lock_flag = 'UNLOCKED', updated_at = NOW(), updated_by = $3
	WHERE user_id = $1;`
)

const (
	menuColumns = `menu_no, upper_menu_no, menu_order, menu_name, program_file_name, display_flag,
		created_at, created_by, updated_at, updated_by`

	createMenu = `INSERT INTO menus (menu_no, upper_menu_no, menu_order, menu_name, program_file_name, display_flag, created_by, updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	RETURNING ` + menuColumns + `;`

	getMenu = `SELECT ` + menuColumns + `
	FROM menus
	WHERE menu_no = $1;`

	listRootMenus = `SELECT ` + menuColumns + `
	FROM menus
	WHERE upper_menu_no IS NULL
	ORDER BY menu_order, menu_no;`

	listChildMenus = `SELECT ` + menuColumns + `
	FROM menus
	WHERE upper_menu_no = $1
	ORDER BY menu_order, menu_no;`

	listAllMenus = `SELECT ` + menuColumns + `
	FROM menus
	ORDER BY upper_menu_no NULLS FIRST, menu_order, menu_no;`

	countChildMenus = `SELECT COUNT(*) FROM menus WHERE upper_menu_no = $1;`

	deleteMenu = `DELETE FROM menus WHERE menu_no = $1;`

	// depth = number of edges on the path to the root (root depth is 0)
	menuDepth = `WITH RECURSIVE ancestors AS (
		SELECT menu_no, upper_menu_no, 0 AS depth
		FROM menus
		WHERE menu_no = $1
		UNION ALL
		SELECT m.menu_no, m.upper_menu_no, a.depth + 1
		FROM menus m
		JOIN ancestors a ON m.menu_no = a.upper_menu_no
	)
	SELECT MAX(depth) FROM ancestors;`

	// breadth-first snapshot: rel_depth ordering yields every parent before
	// any of its children
	menuSubtree = `WITH RECURSIVE subtree AS (
		SELECT menu_no, upper_menu_no, menu_order, menu_name, program_file_name, display_flag,
			created_at, created_by, updated_at, updated_by, 0 AS rel_depth
		FROM menus
		WHERE menu_no = $1
		UNION ALL
		SELECT m.menu_no, m.upper_menu_no, m.menu_order, m.menu_name, m.program_file_name, m.display_flag,
			m.created_at, m.created_by, m.updated_at, m.updated_by, s.rel_depth + 1
		FROM menus m
		JOIN subtree s ON m.upper_menu_no = s.menu_no
	)
	SELECT menu_no, upper_menu_no, menu_order, menu_name, program_file_name, display_flag,
		created_at, created_by, updated_at, updated_by
	FROM subtree
	ORDER BY rel_depth, menu_order, menu_no;`

	maxSiblingOrderRoot  = `SELECT COALESCE(MAX(menu_order), -1) FROM menus WHERE upper_menu_no IS NULL;`
	maxSiblingOrderChild = `SELECT COALESCE(MAX(menu_order), -1) FROM menus WHERE upper_menu_no = $1;`

	insertMenuNode = `INSERT INTO menus (menu_no, upper_menu_no, menu_order, menu_name, program_file_name, display_flag, created_by, updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $7);`
)

const (
	menusForGroup = `SELECT menu_no FROM group_menu WHERE group_id = $1;`

	listGrants = `SELECT group_id, menu_no FROM group_menu ORDER BY group_id, menu_no;`

	deleteGrantsForGroup = `DELETE FROM group_menu WHERE group_id = $1;`

	insertGrant = `INSERT INTO group_menu (group_id, menu_no) VALUES ($1, $2);`
)

const (
	insertAuditEvent = `INSERT INTO audit_log (id, kind, subject, outcome, details, created_at)
	VALUES ($1, $2, $3, $4, $5, $6);`
)
