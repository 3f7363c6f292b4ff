package services

import (
	"strings"

	"talenthub-backend/models"
)

// categoryKeywords maps upload field-name keywords to document categories.
// Checked in order, first match wins; unmatched fields fall back to "other".
var categoryKeywords = []struct {
	keywords []string
	category models.FileCategory
}{
	{[]string{"resume", "cv"}, models.CategoryResume},
	{[]string{"certificate", "degree", "marksheet"}, models.CategoryEducationCert},
	{[]string{"experience"}, models.CategoryExperienceLtr},
	{[]string{"relieving"}, models.CategoryRelievingLtr},
	{[]string{"payslip", "salary_slip"}, models.CategoryPayslip},
	{[]string{"bank"}, models.CategoryBankStatement},
	{[]string{"offer"}, models.CategoryOfferLetter},
	{[]string{"aadhaar", "aadhar", "pan", "passport", "kyc", "voter"}, models.CategoryKYCDocument},
	{[]string{"photo", "picture", "avatar"}, models.CategoryPhoto},
	{[]string{"agreement", "contract", "nda"}, models.CategoryAgreement},
	{[]string{"policy"}, models.CategoryPolicyDocument},
}

// ClassifyField derives a document category from the upload field name.
func ClassifyField(fieldName string) models.FileCategory {
	name := strings.ToLower(fieldName)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(name, kw) {
				return entry.category
			}
		}
	}
	return models.CategoryOther
}
