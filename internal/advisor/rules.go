package advisor

// DefaultRules is the built-in rule table.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "emergency",
			Priority: 100,
			Keywords: []string{"khó thở", "đau ngực", "tức ngực", "co giật", "bất tỉnh", "ngất", "nôn ra máu"},
			Response: "Đây có thể là tình trạng khẩn cấp. Hãy gọi cấp cứu 115 hoặc đến cơ sở y tế gần nhất ngay.",
		},
		{
			Name:     "fever",
			Priority: 50,
			Keywords: []string{"sốt", "đau đầu", "nhức đầu", "đau nhức", "giảm đau"},
			Response: "Với sốt hoặc đau đầu, bạn nên nghỉ ngơi, uống nhiều nước và có thể dùng thuốc hạ sốt, giảm đau như paracetamol theo đúng liều. Nếu sốt trên 39°C hoặc kéo dài quá 3 ngày, hãy đi khám.",
			Products: Mentions("paracetamol", "hạ sốt", "giảm đau", "ibuprofen"),
		},
		{
			Name:     "respiratory",
			Priority: 40,
			Keywords: []string{"ho", "bị cảm", "cảm cúm", "cảm lạnh", "sổ mũi", "nghẹt mũi", "đau họng", "viêm họng"},
			Response: "Triệu chứng cảm, ho thường tự khỏi sau vài ngày. Giữ ấm, súc họng nước muối và dùng siro ho hoặc thuốc cảm không kê đơn nếu cần.",
			Products: Mentions("thuốc ho", "siro ho", "cảm cúm", "thuốc cảm", "họng", "xịt mũi"),
		},
		{
			Name:     "digestive",
			Priority: 40,
			Keywords: []string{"đau bụng", "tiêu chảy", "đầy hơi", "khó tiêu", "buồn nôn", "táo bón", "dạ dày"},
			Response: "Với các vấn đề tiêu hóa, hãy ăn nhẹ, uống đủ nước và bù điện giải. Men tiêu hóa hoặc thuốc dạ dày có thể giúp giảm triệu chứng.",
			Products: Mentions("tiêu hóa", "dạ dày", "men vi sinh", "điện giải"),
		},
		{
			Name:     "allergy",
			Priority: 30,
			Keywords: []string{"dị ứng", "ngứa", "mẩn đỏ", "nổi mề đay", "hắt hơi"},
			Response: "Dị ứng nhẹ có thể dùng thuốc kháng histamin. Tránh tác nhân gây dị ứng và theo dõi nếu triệu chứng nặng hơn.",
			Products: Mentions("dị ứng", "kháng histamin", "loratadin", "cetirizin"),
		},
		{
			Name:     "fatigue",
			Priority: 20,
			Keywords: []string{"mệt mỏi", "mất ngủ", "vitamin", "đề kháng", "suy nhược"},
			Response: "Bạn nên ngủ đủ giấc, ăn uống cân bằng. Vitamin và thực phẩm chức năng có thể hỗ trợ tăng sức đề kháng.",
			Products: InCategory("Thực phẩm chức năng"),
		},
		{
			Name:     "skin",
			Priority: 20,
			Keywords: []string{"mụn", "da khô", "cháy nắng", "chống nắng", "dưỡng da"},
			Response: "Hãy làm sạch da nhẹ nhàng, dưỡng ẩm và dùng kem chống nắng hằng ngày.",
			Products: InCategory("Sản phẩm làm đẹp"),
		},
		{
			Name:     "monitoring",
			Priority: 10,
			Keywords: []string{"huyết áp", "đường huyết", "nhiệt kế", "đo nhiệt độ", "máy đo"},
			Response: "Theo dõi chỉ số tại nhà giúp bạn và bác sĩ nắm rõ tình trạng sức khỏe. Tham khảo các thiết bị y tế dưới đây.",
			Products: InCategory("Thiết bị y tế"),
		},
	}
}
