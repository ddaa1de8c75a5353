package i18n

var translations = map[string]map[string]string{
	"en": {
		"nav.employees": "Employees",
		"nav.addNew":    "Add New",

		"employee.firstName":        "First Name",
		"employee.lastName":         "Last Name",
		"employee.dateOfEmployment": "Date of Employment",
		"employee.dateOfBirth":      "Date of Birth",
		"employee.phone":            "Phone",
		"employee.email":            "Email",
		"employee.department":       "Department",
		"employee.position":         "Position",
		"employee.actions":          "Actions",
		"employee.edit":             "Edit",
		"employee.delete":           "Delete",
		"employee.noEmployees":      "No employees found",

		"employeeList.title":                "Employee List",
		"employeeList.addEmployee":          "Add Employee",
		"employeeList.search":               "Search employees...",
		"employeeList.switchToTable":        "Switch to Table",
		"employeeList.switchToList":         "Switch to List",
		"employeeList.previous":             "Previous",
		"employeeList.next":                 "Next",
		"employeeList.actions":              "Actions",
		"employeeList.edit":                 "Edit",
		"employeeList.delete":               "Delete",
		"employeeList.confirmDelete":        "Are you sure you want to delete this employee?",
		"employeeList.selectAll":            "Select All",
		"employeeList.noResults":            "No results found",
		"employeeList.deleteConfirmTitle":   "Are you sure?",
		"employeeList.deleteConfirmMessage": "Selected Employee record of {{employeeName}} will be deleted",
		"employeeList.proceed":              "Proceed",
		"employeeList.cancel":               "Cancel",
		"employeeList.close":                "Close",

		"employeeForm.createTitle":      "Create Employee",
		"employeeForm.editTitle":        "Edit Employee",
		"employeeForm.firstName":        "First Name",
		"employeeForm.lastName":         "Last Name",
		"employeeForm.dateOfEmployment": "Date of Employment",
		"employeeForm.dateOfBirth":      "Date of Birth",
		"employeeForm.phone":            "Phone",
		"employeeForm.email":            "Email",
		"employeeForm.department":       "Department",
		"employeeForm.position":         "Position",
		"employeeForm.save":             "Save",
		"employeeForm.cancel":           "Cancel",

		"employeeForm.departments.analytics": "Analytics",
		"employeeForm.departments.tech":      "Tech",
		"employeeForm.positions.junior":      "Junior",
		"employeeForm.positions.medior":      "Medior",
		"employeeForm.positions.senior":      "Senior",

		"validation.required":              "This field is required",
		"validation.invalidEmail":          "Invalid email address",
		"validation.invalidPhone":          "Invalid phone number",
		"validation.invalidDate":           "Invalid date",
		"validation.invalidBirthDate":      "Birth date cannot be in the future",
		"validation.invalidEmploymentDate": "Employment date cannot be before birth date",
		"validation.invalidYearLength":     "Invalid year format",

		"dialog.deleteTitle":   "Are you sure?",
		"dialog.deleteMessage": "Selected Employee record of {{employeeName}} will be deleted",
		"dialog.saveTitle":     "Confirm Changes",
		"dialog.saveMessage":   "Do you want to save changes for {{employeeName}}?",
		"dialog.proceed":       "Proceed",
		"dialog.cancel":        "Cancel",
		"dialog.close":         "Close",

		"errors.missingFields":       "Please fill in all required fields",
		"errors.emailInUse":          "Email address is already in use",
		"errors.notFound":            "Employee not found",
		"errors.persistence":         "Failed to save data",
		"errors.unsupportedLanguage": "Unsupported language",
		"errors.mutateDisabled":      "Changes are disabled",
	},
	"tr": {
		"nav.employees": "Çalışanlar",
		"nav.addNew":    "Yeni Ekle",

		"employee.firstName":        "Ad",
		"employee.lastName":         "Soyad",
		"employee.dateOfEmployment": "İşe Başlama Tarihi",
		"employee.dateOfBirth":      "Doğum Tarihi",
		"employee.phone":            "Telefon",
		"employee.email":            "E-posta",
		"employee.department":       "Departman",
		"employee.position":         "Pozisyon",
		"employee.actions":          "İşlemler",
		"employee.edit":             "Düzenle",
		"employee.delete":           "Sil",
		"employee.noEmployees":      "Çalışan bulunamadı",

		"employeeList.title":                "Çalışan Listesi",
		"employeeList.addEmployee":          "Çalışan Ekle",
		"employeeList.search":               "Çalışan ara...",
		"employeeList.switchToTable":        "Tablo Görünümüne Geç",
		"employeeList.switchToList":         "Liste Görünümüne Geç",
		"employeeList.previous":             "Önceki",
		"employeeList.next":                 "Sonraki",
		"employeeList.actions":              "İşlemler",
		"employeeList.edit":                 "Düzenle",
		"employeeList.delete":               "Sil",
		"employeeList.confirmDelete":        "Bu çalışanı silmek istediğinizden emin misiniz?",
		"employeeList.selectAll":            "Tümünü Seç",
		"employeeList.noResults":            "Sonuç bulunamadı",
		"employeeList.deleteConfirmTitle":   "Emin misiniz?",
		"employeeList.deleteConfirmMessage": "{{employeeName}} isimli çalışanın kaydı silinecektir",
		"employeeList.proceed":              "Devam Et",
		"employeeList.cancel":               "İptal",
		"employeeList.close":                "Kapat",

		"employeeForm.createTitle":      "Çalışan Oluştur",
		"employeeForm.editTitle":        "Çalışan Düzenle",
		"employeeForm.firstName":        "Ad",
		"employeeForm.lastName":         "Soyad",
		"employeeForm.dateOfEmployment": "İşe Başlama Tarihi",
		"employeeForm.dateOfBirth":      "Doğum Tarihi",
		"employeeForm.phone":            "Telefon",
		"employeeForm.email":            "E-posta",
		"employeeForm.department":       "Departman",
		"employeeForm.position":         "Pozisyon",
		"employeeForm.save":             "Kaydet",
		"employeeForm.cancel":           "İptal",

		"employeeForm.departments.analytics": "Analitik",
		"employeeForm.departments.tech":      "Teknoloji",
		"employeeForm.positions.junior":      "Junior",
		"employeeForm.positions.medior":      "Medior",
		"employeeForm.positions.senior":      "Senior",

		"validation.required":              "Bu alan zorunludur",
		"validation.invalidEmail":          "Geçersiz e-posta adresi",
		"validation.invalidPhone":          "Geçersiz telefon numarası",
		"validation.invalidDate":           "Geçersiz tarih",
		"validation.invalidBirthDate":      "Doğum tarihi bugünden sonra olamaz",
		"validation.invalidEmploymentDate": "İşe başlama tarihi doğum tarihinden önce olamaz",
		"validation.invalidYearLength":     "Geçersiz yıl formatı",

		"dialog.deleteTitle":   "Emin misiniz?",
		"dialog.deleteMessage": "{{employeeName}} isimli çalışanın kaydı silinecektir",
		"dialog.saveTitle":     "Değişiklikleri Onayla",
		"dialog.saveMessage":   "{{employeeName}} isimli çalışanın bilgilerini güncellemek istediğinize emin misiniz?",
		"dialog.proceed":       "Devam Et",
		"dialog.cancel":        "İptal",
		"dialog.close":         "Kapat",

		"errors.missingFields":       "Lütfen tüm zorunlu alanları doldurun",
		"errors.emailInUse":          "E-posta adresi zaten kullanımda",
		"errors.notFound":            "Çalışan bulunamadı",
		"errors.persistence":         "Veriler kaydedilemedi",
		"errors.unsupportedLanguage": "Desteklenmeyen dil",
		"errors.mutateDisabled":      "Değişiklikler devre dışı",
	},
}
