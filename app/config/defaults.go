package config

// defaultTopics are the built-in categories the product ships with. The
// placeholder sets are deliberately uneven: they are editorial content,
// not generated filler.
func defaultTopics() []*Topic {
	return []*Topic{
		{
			Name:  "Economia",
			Query: "economia OR mercado OR juros OR inflação",
			Placeholders: []Placeholder{
				{Title: "Juros em Debate", Description: "Discussões sobre a taxa de juros e seus impactos."},
				{Title: "Inflação Sobe", Description: "Índice de preços registra alta no mês."},
				{Title: "Câmbio Oscila", Description: "Moeda tem variação após novos dados."},
				{Title: "Mercado de Trabalho", Description: "Contratações crescem em setores específicos."},
			},
		},
		{
			Name:  "Cultura",
			Query: "cultura OR arte OR cinema OR música OR teatro",
			Placeholders: []Placeholder{
				{Title: "Festival de Cinema", Description: "Mostra reúne produções independentes."},
				{Title: "Exposição de Arte", Description: "Obras contemporâneas em destaque."},
				{Title: "Música ao Vivo", Description: "Agenda cultural traz apresentações locais."},
			},
		},
		{
			Name:  "Tecnologia",
			Query: "tecnologia OR IA OR inovação OR software",
			Placeholders: []Placeholder{
				{Title: "IA nas Empresas", Description: "Adoção de IA acelera transformação digital."},
				{Title: "Segurança Digital", Description: "Boas práticas para proteger seus dados."},
				{Title: "Lançamento de Gadget", Description: "Novo dispositivo chega ao mercado."},
				{Title: "Cloud e Custos", Description: "Estratégias para otimizar gastos na nuvem."},
				{Title: "Dev Trends", Description: "Tendências para desenvolvedores em 2025."},
			},
		},
		{
			Name:  "Política",
			Query: "política OR governo OR eleições",
			Placeholders: []Placeholder{
				{Title: "Reforma em Pauta", Description: "Projeto avança em comissões."},
				{Title: "Debate Aberto", Description: "Especialistas analisam cenários."},
				{Title: "Eleições e Propostas", Description: "Candidatos apresentam planos."},
				{Title: "Transparência Pública", Description: "Novas medidas de controle."},
				{Title: "Relações Internacionais", Description: "Acordos e negociações em foco."},
				{Title: "Orçamento Anual", Description: "Discussões sobre prioridades."},
			},
		},
	}
}
