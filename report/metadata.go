package report

// Field 是用户信息区的一行：label: value。
type Field struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// Line 返回绘制用的文本。
func (f Field) Line() string {
	if f.Label == "" {
		return f.Value
	}
	return f.Label + ": " + f.Value
}

// UserDetails 描述报表所属用户。
type UserDetails struct {
	Name       string `yaml:"name" json:"name"`
	Email      string `yaml:"email" json:"email"`
	Mobile     string `yaml:"mobile" json:"mobile"`
	CardNumber string `yaml:"cardNumber" json:"cardNumber"`
	CardType   string `yaml:"cardType" json:"cardType"`
	Address    string `yaml:"address" json:"address"`
}

// Fields 按固定顺序展开用户信息。
func (u UserDetails) Fields() []Field {
	return []Field{
		{Label: "Name", Value: u.Name},
		{Label: "Email", Value: u.Email},
		{Label: "Mobile", Value: u.Mobile},
		{Label: "Card Number", Value: u.CardNumber},
		{Label: "Card Type", Value: u.CardType},
		{Label: "Address", Value: u.Address},
	}
}

// Metadata 是一次构建的报表元信息，每次调用显式传入。
type Metadata struct {
	Title      string   `yaml:"title" json:"title"`
	Author     string   `yaml:"author" json:"author"`
	Subject    string   `yaml:"subject" json:"subject"`
	Creator    string   `yaml:"creator" json:"creator"`
	Keywords   []string `yaml:"keywords" json:"keywords"`
	DocumentID string   `yaml:"documentId" json:"documentId"`
	// Brand 在没有 Logo 时作为右上角的品牌标识文本。
	Brand string `yaml:"brand" json:"brand"`
	// Logo 为图片路径，空表示不绘制图片。
	Logo string `yaml:"logo" json:"logo"`
	// GeneratedFor 是第一页用户信息区的内容。
	GeneratedFor []Field `yaml:"generatedFor" json:"generatedFor"`
}

// MetadataFor builds the default report metadata for a user.
func MetadataFor(u UserDetails) Metadata {
	return Metadata{
		Title:        "Transaction Report",
		Author:       u.Name,
		Creator:      "Transaction Report App",
		GeneratedFor: u.Fields(),
	}
}
