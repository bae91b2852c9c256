package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Leave Management
	PermissionLeaveViewOwn  Permission = "leave.view_own"
	PermissionLeaveApply    Permission = "leave.apply"
	PermissionLeaveViewAll  Permission = "leave.view_all"
	PermissionLeaveReview   Permission = "leave.review"
	PermissionLeaveBalances Permission = "leave.balances"

	// Attendance Management
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceMark    Permission = "attendance.mark"
	PermissionAttendanceViewAll Permission = "attendance.view_all"

	// Student Management
	PermissionStudentViewAll Permission = "student.view_all"
	PermissionStudentManage  Permission = "student.manage"

	// Master Data
	PermissionMasterView   Permission = "master.view"
	PermissionMasterManage Permission = "master.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveViewAll,
		PermissionLeaveReview,
		PermissionLeaveBalances,
		PermissionAttendanceViewOwn,
		PermissionAttendanceMark,
		PermissionAttendanceViewAll,
		PermissionStudentViewAll,
		PermissionStudentManage,
		PermissionMasterView,
		PermissionMasterManage,
	},
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionLeaveViewAll,
		PermissionLeaveReview,
		PermissionLeaveBalances,
		PermissionAttendanceMark,
		PermissionAttendanceViewAll,
		PermissionStudentViewAll,
		PermissionStudentManage,
		PermissionMasterView,
		PermissionMasterManage,
	},
	RoleTrainer: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionAttendanceMark,
		PermissionAttendanceViewAll,
		PermissionStudentViewAll,
		PermissionMasterView,
	},
	RoleStudent: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveApply,
		PermissionAttendanceViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
